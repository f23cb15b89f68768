package handler

import (
	"itinerary/logging"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var (
	log      *logrus.Logger
	validate *validator.Validate
)

func init() {
	log = logging.GetLogger()
	validate = validator.New()
}
