// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/translate"
)

// FAQInput carries a FAQ save request.
type FAQInput struct {
	ID           int64
	Question     string
	Answer       string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// SaveFAQ validates, merges and persists a FAQ entry.
func (c *Content) SaveFAQ(ctx context.Context, in FAQInput) (model.FAQ, error) {
	question, err := mergeText(in.Question, in.Translations, model.FieldQuestion, true)
	if err != nil {
		return model.FAQ{}, err
	}
	answer, err := mergeText(in.Answer, in.Translations, model.FieldAnswer, false)
	if err != nil {
		return model.FAQ{}, err
	}

	translations := mergeTranslations(map[string]translate.Flattened{
		model.FieldQuestion: question,
		model.FieldAnswer:   answer,
	})

	if in.ID == 0 {
		f, err := c.store.CreateFAQ(ctx, store.CreateFAQParams{
			Question:     question.Value,
			Answer:       c.sanitize.Sanitize(answer.Value),
			Position:     in.Position,
			IsActive:     in.IsActive,
			Translations: translations,
		})
		if err != nil {
			return model.FAQ{}, fmt.Errorf("creating faq: %w", err)
		}
		slog.Info("faq created", "id", f.ID)
		return f, nil
	}

	f, err := c.store.UpdateFAQ(ctx, store.UpdateFAQParams{
		ID:           in.ID,
		Question:     question.Value,
		Answer:       c.sanitize.Sanitize(answer.Value),
		Position:     in.Position,
		IsActive:     in.IsActive,
		Translations: translations,
	})
	if err != nil {
		return model.FAQ{}, fmt.Errorf("updating faq %d: %w", in.ID, err)
	}
	slog.Info("faq updated", "id", f.ID)
	return f, nil
}

// DeleteFAQ removes a FAQ entry.
func (c *Content) DeleteFAQ(ctx context.Context, id int64) error {
	if _, err := c.store.GetFAQByID(ctx, id); err != nil {
		return err
	}
	if err := c.store.DeleteFAQ(ctx, id); err != nil {
		return fmt.Errorf("deleting faq %d: %w", id, err)
	}
	slog.Info("faq deleted", "id", id)
	return nil
}

// TestimonialInput carries a testimonial save request.
type TestimonialInput struct {
	ID           int64
	Author       string
	Quote        string
	Rating       int64
	AvatarURL    string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// SaveTestimonial validates, merges and persists a testimonial.
func (c *Content) SaveTestimonial(ctx context.Context, in TestimonialInput) (model.Testimonial, error) {
	quote, err := mergeText(in.Quote, in.Translations, model.FieldQuote, true)
	if err != nil {
		return model.Testimonial{}, err
	}
	if in.Author == "" {
		return model.Testimonial{}, &translate.ValidationError{
			Field:   "author",
			Message: "author is required",
		}
	}
	if in.Rating < 0 || in.Rating > 5 {
		return model.Testimonial{}, &translate.ValidationError{
			Field:   "rating",
			Message: "rating must be between 0 and 5",
		}
	}

	translations := mergeTranslations(map[string]translate.Flattened{
		model.FieldQuote: quote,
	})

	if in.ID == 0 {
		tm, err := c.store.CreateTestimonial(ctx, store.CreateTestimonialParams{
			Author:       in.Author,
			Quote:        quote.Value,
			Rating:       in.Rating,
			AvatarURL:    in.AvatarURL,
			Position:     in.Position,
			IsActive:     in.IsActive,
			Translations: translations,
		})
		if err != nil {
			return model.Testimonial{}, fmt.Errorf("creating testimonial: %w", err)
		}
		slog.Info("testimonial created", "id", tm.ID)
		return tm, nil
	}

	tm, err := c.store.UpdateTestimonial(ctx, store.UpdateTestimonialParams{
		ID:           in.ID,
		Author:       in.Author,
		Quote:        quote.Value,
		Rating:       in.Rating,
		AvatarURL:    in.AvatarURL,
		Position:     in.Position,
		IsActive:     in.IsActive,
		Translations: translations,
	})
	if err != nil {
		return model.Testimonial{}, fmt.Errorf("updating testimonial %d: %w", in.ID, err)
	}
	slog.Info("testimonial updated", "id", tm.ID)
	return tm, nil
}

// DeleteTestimonial removes a testimonial.
func (c *Content) DeleteTestimonial(ctx context.Context, id int64) error {
	if _, err := c.store.GetTestimonialByID(ctx, id); err != nil {
		return err
	}
	if err := c.store.DeleteTestimonial(ctx, id); err != nil {
		return fmt.Errorf("deleting testimonial %d: %w", id, err)
	}
	slog.Info("testimonial deleted", "id", id)
	return nil
}
