package config

const SourceFileExt = ".ifc"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".ifc", ".interface"}

// Well-known type names of the definition surface
const (
	SelfTypeName      = "Self"
	RuntimeTypeName   = "Runtime" // concrete placeholder substituted for Self
	OriginTypeName    = "RuntimeOrigin"
	SelectWrapperName = "Select"
	SelectionKeyName  = "H256" // opaque 256-bit selection key
	CallResultName    = "CallResult"
	ViewResultName    = "ViewResult"
)

// Definition-level attribute names
const (
	DefinitionAttrName   = "definition"
	WithSelectorAttrName = "with_selector"
)
