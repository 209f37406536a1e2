package assets

// Built-in asset names.
const (
	IndexStyle         = "index"
	FormStyle          = "form"
	DefaultRecipeStyle = "warm"
	IndexScript        = "index"
)

// RecipeStyles lists the built-in styles meant for recipe pages.
var RecipeStyles = []string{"warm", "plain"}

var builtinLoader = NewEmbeddedLoader()

// LoadStyle returns a built-in stylesheet.
func LoadStyle(name string) (string, error) {
	return builtinLoader.LoadStyle(name)
}

// LoadScript returns a built-in script.
func LoadScript(name string) (string, error) {
	return builtinLoader.LoadScript(name)
}
