package script

import (
	"os"
	"testing"

	"github.com/ezrec/cpusim/translate"
)

func TestMain(m *testing.M) {
	translate.SetLanguage("en-US")
	os.Exit(m.Run())
}
