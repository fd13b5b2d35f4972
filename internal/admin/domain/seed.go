package domain

// SeedData is the initial content of an empty store. Menus and grants refer
// to each other by Key so the file does not depend on generated ids.
type SeedData struct {
	Roles []SeedRole `yaml:"roles"`
	Admin SeedAdmin  `yaml:"admin"`
	Menus []SeedMenu `yaml:"menus"`
}

type SeedRole struct {
	Name   string   `yaml:"name"`
	Scopes []string `yaml:"scopes"`
	// Menus lists the keys of menus granted to the role. "*" grants all.
	Menus []string `yaml:"menus"`
}

type SeedAdmin struct {
	Username      string `yaml:"username"`
	PreferredName string `yaml:"preferredName"`
	// Password may be empty, in which case one is generated and logged once.
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type SeedMenu struct {
	Key      string     `yaml:"key"`
	Title    string     `yaml:"title"`
	Path     string     `yaml:"path"`
	OrderNum int        `yaml:"orderNum"`
	Inactive bool       `yaml:"inactive"`
	Children []SeedMenu `yaml:"children"`
}
