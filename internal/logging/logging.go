package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetOutput(os.Stdout)
	logg.SetLevel(logrus.InfoLevel)
	if os.Getenv("LOG_JSON") == "1" {
		logg.SetFormatter(&logrus.JSONFormatter{})
	}
	if os.Getenv("LOG_DEBUG") == "1" {
		logg.SetLevel(logrus.DebugLevel)
	}
}

func L() *logrus.Logger { return logg }

// Service returns an entry pre-tagged with the service name, used for the
// before/after trace lines around store calls.
func Service(name string) *logrus.Entry {
	return logg.WithField("service", name)
}
