package catalog

// document is the on-disk catalog layout shared by the YAML and JSON forms.
type document struct {
	Namespace string     `json:"namespace" yaml:"namespace"`
	Types     []typeSpec `json:"types" yaml:"types"`
}

type typeSpec struct {
	Name               string         `json:"name" yaml:"name"`
	Kind               string         `json:"kind" yaml:"kind"`
	Base               string         `json:"base" yaml:"base"`
	Interfaces         []string       `json:"interfaces" yaml:"interfaces"`
	TypeParameters     []string       `json:"typeParameters" yaml:"typeParameters"`
	Members            []string       `json:"members" yaml:"members"`
	Naming             string         `json:"naming" yaml:"naming"`
	Discriminator      string         `json:"discriminator" yaml:"discriminator"`
	DiscriminatorValue string         `json:"discriminatorValue" yaml:"discriminatorValue"`
	Subtypes           []string       `json:"subtypes" yaml:"subtypes"`
	Description        string         `json:"description" yaml:"description"`
	Properties         []propertySpec `json:"properties" yaml:"properties"`
}

type propertySpec struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	JSONName    string `json:"jsonName" yaml:"jsonName"`
	Required    bool   `json:"required" yaml:"required"`
	Ignore      bool   `json:"ignore" yaml:"ignore"`
	Description string `json:"description" yaml:"description"`
}

const (
	kindObject    = "object"
	kindInterface = "interface"
	kindEnum      = "enum"
)
