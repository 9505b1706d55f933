package dataset

// User es una fila de la tabla demográfica. Las columnas de plataforma se
// descubren del encabezado del CSV y se normalizan a booleanos.
type User struct {
	UserID    int
	Age       int
	Gender    string
	Platforms map[string]bool
}

// Rating is one interaction of the historical log.
type Rating struct {
	UserID int
	ShowID string
	Rating float64
}

// Title is one catalog entry. The genre set may be empty.
type Title struct {
	ShowID string
	Title  string
	Genres []string
}
