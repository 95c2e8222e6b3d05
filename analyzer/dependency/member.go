package dependency

// Member identifies a method or field by its owning class and name.
// Descriptors are not tracked, so overloads share one Member.
type Member struct {
	Owner string `yaml:"owner"` // internal class name, e.g. com/x/Foo
	Name  string `yaml:"name"`
}

// String returns member in owner.name form
func (m Member) String() string {
	return m.Owner + "." + m.Name
}

// Access represents a directed dependency: code in Source references Dest
type Access struct {
	Source Member `yaml:"source"`
	Dest   Member `yaml:"dest"`
}

// String returns access in source -> dest form
func (a Access) String() string {
	return a.Source.String() + " -> " + a.Dest.String()
}
