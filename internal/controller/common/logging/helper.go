package logginghelper

import (
	"time"

	log "github.com/sirupsen/logrus"
)

func LogRequest(method, route string, status int, elapsed time.Duration) {
	log.WithFields(log.Fields{
		"method":  method,
		"route":   route,
		"status":  status,
		"elapsed": elapsed.String(),
	}).Debug("Handled request")
}

func LogIssue(op, message string) {
	log.WithFields(log.Fields{
		"op":    op,
		"issue": message,
	}).Warn("Log file issue")
}

func LogError(op string, err error) {
	log.WithFields(log.Fields{
		"op":    op,
		"error": err,
	}).Error("Request failed")
}
