package glacier_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGlacier(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Glacier Solver Suite")
}
