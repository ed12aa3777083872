package handlers

import (
	"familygather-backend/config"
	"familygather-backend/services"

	"github.com/sirupsen/logrus"
)

// logInternal records the full cause of unexpected failures server-side;
// clients only ever see the generic message.
func (h *Handler) logInternal(err error) {
	if services.KindOf(err) == services.KindInternal {
		h.log.WithError(err).Error("Internal error")
	}
}

// Handler carries the services the routes are built on. Everything is
// injected at construction; there is no package-level state.
type Handler struct {
	cfg      *config.Config
	log      *logrus.Logger
	identity *services.IdentityService
	families *services.FamilyService
	events   *services.EventService
	rsvps    *services.RsvpService
	comments *services.CommentService
	catalog  *services.CatalogService
}

func New(
	cfg *config.Config,
	log *logrus.Logger,
	identity *services.IdentityService,
	families *services.FamilyService,
	events *services.EventService,
	rsvps *services.RsvpService,
	comments *services.CommentService,
	catalog *services.CatalogService,
) *Handler {
	return &Handler{
		cfg:      cfg,
		log:      log,
		identity: identity,
		families: families,
		events:   events,
		rsvps:    rsvps,
		comments: comments,
		catalog:  catalog,
	}
}
