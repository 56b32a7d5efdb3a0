package api

import (
	"net/http"
	"strconv"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
)

type testimonialHandler struct {
	resourceHandler[models.Testimonial, *models.Testimonial]
	testimonialRepo *database.TestimonialRepo
}

func newTestimonialHandler(testimonialRepo *database.TestimonialRepo) testimonialHandler {
	return testimonialHandler{
		resourceHandler: newResourceHandler[models.Testimonial]("testimonial", testimonialRepo),
		testimonialRepo: testimonialRepo,
	}
}

// getTestimonials lists testimonials
// @Summary Get testimonials
// @Description Approved testimonials only. include_all=true returns every status, but only for a verified admin; anyone else silently gets the approved list.
// @Tags Testimonials
// @Produce json
// @Param include_all query bool false "Include pending and rejected"
// @Success 200 {array} models.Testimonial
// @Router /api/testimonials [get]
func (h testimonialHandler) getTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeAll, _ := strconv.ParseBool(r.URL.Query().Get("include_all"))
		if includeAll {
			user, _ := ctxGetUser(r.Context())
			includeAll = user.CanEdit()
		}

		testimonials, err := h.testimonialRepo.FindAll(includeAll)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, nonNil(testimonials))
	}
}

// createTestimonial lets an admin add a testimonial directly. Without an
// explicit status it is published right away.
// @Summary Create testimonial
// @Tags Testimonials
// @Security BearerAuth
// @Param testimonial body models.Testimonial true "Testimonial"
// @Success 201 {object} models.Testimonial
// @Router /api/testimonials [post]
func (h testimonialHandler) createTestimonial() http.HandlerFunc {
	return h.create(func(t *models.Testimonial) {
		if t.Status == "" {
			t.Status = models.StatusApproved
		}
	})
}

// submitTestimonial is the public submission form. Whatever the body
// says, the testimonial waits for moderation.
// @Summary Submit testimonial
// @Tags Testimonials
// @Param testimonial body models.Testimonial true "Name, role, company, rating, quote"
// @Success 201 {object} models.Testimonial
// @Failure 400 {object} ErrorResponse
// @Router /api/testimonials/submit [post]
func (h testimonialHandler) submitTestimonial() http.HandlerFunc {
	return h.create(func(t *models.Testimonial) {
		t.Status = models.StatusPending
		t.LogoURL = ""
		if t.Rating == 0 {
			t.Rating = models.DefaultRating
		}
	})
}

// @Summary Update testimonial
// @Description Partial update; used by moderators to approve or reject. The status cannot be cleared.
// @Tags Testimonials
// @Security BearerAuth
// @Failure 400 {object} ErrorResponse "status missing or unknown"
// @Router /api/testimonials/{id} [patch]
func (h testimonialHandler) updateTestimonial() http.HandlerFunc {
	return h.update(func(t *models.Testimonial) error {
		if !t.Status.Valid() {
			return errs.NewInvalidFieldError("status", "must be approved, pending or rejected")
		}
		return nil
	})
}

// @Summary Delete testimonial
// @Tags Testimonials
// @Security BearerAuth
// @Router /api/testimonials/{id} [delete]
func (h testimonialHandler) deleteTestimonial() http.HandlerFunc {
	return h.delete()
}
