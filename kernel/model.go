package kernel

import (
	"bitbucket.org/dtolpin/infergo/model"
)

// Model exposes a kernel as a similarity model for gogp.
// Observe receives the two points concatenated; there are no
// kernel parameters in x since hyperparameters are fixed.
type Model struct {
	Kernel Kernel
	NDim   int
}

var _ model.Model = Model{}

func AsModel(k Kernel, ndim int) Model {
	return Model{Kernel: k, NDim: ndim}
}

func (m Model) Observe(x []float64) float64 {
	return m.Kernel.Cov(x[:m.NDim], x[m.NDim:2*m.NDim])
}

// Gradient is zero: nothing in x is a parameter.
func (m Model) Gradient() []float64 {
	return make([]float64, 2*m.NDim)
}

func (Model) NTheta() int { return 0 }
