package reencode

import (
	"os"
	"testing"

	"mediashrink/internal/testsupport"
)

func TestMain(m *testing.M) {
	testsupport.RunFakeEncoderIfRequested()
	os.Exit(m.Run())
}
