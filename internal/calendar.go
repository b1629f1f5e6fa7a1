package internal

type Calendar struct {
	ID      string
	Name    string
	Primary bool
}

func (c Calendar) String() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}
