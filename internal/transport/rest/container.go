// Package rest exposes the quiz over HTTP: session lifecycle, step
// navigation, and the contact form.
package rest

import (
	"settlement-quiz/internal/clients/contact"
	"settlement-quiz/internal/common/config"
	"settlement-quiz/internal/common/logger"
	"settlement-quiz/internal/quiz/analytics"
	"settlement-quiz/internal/quiz/catalog"
	"settlement-quiz/internal/quiz/controller"
	"settlement-quiz/internal/quiz/store"
)

// Container carries the dependencies the handlers need.
type Container struct {
	Config    *config.Config
	Logger    logger.Logger
	Sessions  *store.SessionStore
	Estimator controller.Estimator
	Contact   *contact.Client
	Tracker   *analytics.Tracker
	Catalog   []catalog.Question
}
