package unique

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUnique(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Unique Suite")
}
