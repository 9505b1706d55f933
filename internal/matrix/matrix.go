package matrix

import "math"

// Interaction es una tripleta (user, show, rating) del log de interacciones.
type Interaction struct {
	UserID int
	ShowID string
	Value  float64
}

// Row is one item of the interaction matrix: its ratings indexed by dense
// user column, plus the precomputed aggregates the distance metrics need.
type Row struct {
	Cols map[int]float64
	Sum  float64
	Norm float64 // L2 norm of the row
}

// Matrix is the sparse item×user rating matrix together with the
// id↔index mappers for both axes. Built once at load time, read-only after.
type Matrix struct {
	rows []Row

	itemIndex map[string]int
	itemIDs   []string

	userIndex map[int]int
	userIDs   []int
}

// Build construye la matriz item×user a partir del log completo.
// Rows and columns get dense zero-based indices in first-appearance order,
// so the forward and inverse mappers stay consistent with the row space.
// An empty log yields a 0x0 matrix where every lookup misses.
func Build(log []Interaction) *Matrix {
	m := &Matrix{
		itemIndex: make(map[string]int, 1<<12),
		userIndex: make(map[int]int, 1<<10),
	}

	for _, in := range log {
		i, ok := m.itemIndex[in.ShowID]
		if !ok {
			i = len(m.itemIDs)
			m.itemIndex[in.ShowID] = i
			m.itemIDs = append(m.itemIDs, in.ShowID)
			m.rows = append(m.rows, Row{Cols: make(map[int]float64, 8)})
		}
		u, ok := m.userIndex[in.UserID]
		if !ok {
			u = len(m.userIDs)
			m.userIndex[in.UserID] = u
			m.userIDs = append(m.userIDs, in.UserID)
		}
		m.rows[i].Cols[u] = in.Value
	}

	for i := range m.rows {
		var sum, sq float64
		for _, v := range m.rows[i].Cols {
			sum += v
			sq += v * v
		}
		m.rows[i].Sum = sum
		m.rows[i].Norm = math.Sqrt(sq)
	}

	return m
}

// Items devuelve el número de filas (ítems distintos).
func (m *Matrix) Items() int { return len(m.rows) }

// Users devuelve el número de columnas (usuarios distintos).
func (m *Matrix) Users() int { return len(m.userIDs) }

// RowOf returns the dense row index for a show id.
func (m *Matrix) RowOf(showID string) (int, bool) {
	i, ok := m.itemIndex[showID]
	return i, ok
}

// ShowIDAt returns the show id mapped to a row index.
func (m *Matrix) ShowIDAt(row int) string { return m.itemIDs[row] }

// Row returns the sparse vector at the given row index.
func (m *Matrix) Row(i int) Row { return m.rows[i] }
