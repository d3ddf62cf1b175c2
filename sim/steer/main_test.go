package steer

import (
	"testing"

	"github.com/sirupsen/logrus"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// Suppress spawn logs during tests.
	logrus.SetLevel(logrus.ErrorLevel)
	// The parallel tick must not leave worker goroutines behind.
	goleak.VerifyTestMain(m)
}
