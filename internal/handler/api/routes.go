// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts every /api/v1 endpoint onto r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{id}", h.GetCategory)
		r.Put("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
		r.Post("/{id}/feature", h.FeatureCategory)
	})

	r.Route("/series", func(r chi.Router) {
		r.Get("/", h.ListSeries)
		r.Post("/", h.CreateSeries)
		r.Get("/{id}", h.GetSeries)
		r.Put("/{id}", h.UpdateSeries)
		r.Delete("/{id}", h.DeleteSeries)
		r.Post("/{id}/feature", h.FeatureSeries)
	})

	r.Route("/videos", func(r chi.Router) {
		r.Get("/", h.ListVideos)
		r.Post("/", h.CreateVideo)
		r.Get("/{id}", h.GetVideo)
		r.Put("/{id}", h.UpdateVideo)
		r.Delete("/{id}", h.DeleteVideo)
	})

	r.Route("/reel-categories", func(r chi.Router) {
		r.Get("/", h.ListReelCategories)
		r.Post("/", h.CreateReelCategory)
		r.Get("/{id}", h.GetReelCategory)
		r.Put("/{id}", h.UpdateReelCategory)
		r.Delete("/{id}", h.DeleteReelCategory)
	})

	r.Route("/reels", func(r chi.Router) {
		r.Get("/", h.ListReels)
		r.Post("/", h.CreateReel)
		r.Get("/{id}", h.GetReel)
		r.Put("/{id}", h.UpdateReel)
		r.Delete("/{id}", h.DeleteReel)
	})

	r.Route("/kids", func(r chi.Router) {
		r.Route("/resources", func(r chi.Router) {
			r.Get("/", h.ListKidsResources)
			r.Post("/", h.CreateKidsResource)
			r.Get("/{id}", h.GetKidsResource)
			r.Put("/{id}", h.UpdateKidsResource)
			r.Delete("/{id}", h.DeleteKidsResource)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListKidsProducts)
			r.Post("/", h.CreateKidsProduct)
			r.Get("/{id}", h.GetKidsProduct)
			r.Put("/{id}", h.UpdateKidsProduct)
			r.Delete("/{id}", h.DeleteKidsProduct)
		})
	})

	r.Route("/faqs", func(r chi.Router) {
		r.Get("/", h.ListFAQs)
		r.Post("/", h.CreateFAQ)
		r.Get("/{id}", h.GetFAQ)
		r.Put("/{id}", h.UpdateFAQ)
		r.Delete("/{id}", h.DeleteFAQ)
	})

	r.Route("/testimonials", func(r chi.Router) {
		r.Get("/", h.ListTestimonials)
		r.Post("/", h.CreateTestimonial)
		r.Get("/{id}", h.GetTestimonial)
		r.Put("/{id}", h.UpdateTestimonial)
		r.Delete("/{id}", h.DeleteTestimonial)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.ListSettings)
		r.Post("/bulk", h.BulkUpdateSettings)
		r.Get("/{key}", h.GetSetting)
		r.Put("/{key}", h.UpsertSetting)
	})

	r.Route("/webhooks", func(r chi.Router) {
		r.Get("/", h.ListWebhooks)
		r.Post("/", h.CreateWebhook)
		r.Get("/{id}", h.GetWebhook)
		r.Put("/{id}", h.UpdateWebhook)
		r.Delete("/{id}", h.DeleteWebhook)
		r.Post("/{id}/rotate-secret", h.RotateWebhookSecret)
		r.Get("/{id}/deliveries", h.ListWebhookDeliveries)
		r.Post("/{id}/test", h.TestWebhook)
	})

	r.Get("/events", h.ListEvents)
}
