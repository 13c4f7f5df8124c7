package fakes

// ArraySpec describes a bounded-shape array value.
type ArraySpec struct {
	Name  string `json:"name"`
	Shape []int  `json:"shape"`
	DType string `json:"dtype"`
}

// DiscreteSpec describes an integer-valued array with NumValues choices per element.
type DiscreteSpec struct {
	Name      string `json:"name"`
	NumValues int    `json:"num_values"`
	Shape     []int  `json:"shape"`
}
