package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadUsers lee la tabla de usuarios. Las columnas user_id, age y gender son
// obligatorias; cualquier otra columna se trata como flag de plataforma.
// Una fila malformada (edad no numérica, flag no booleano) aborta la carga.
func LoadUsers(path string) ([]User, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("abriendo archivo de usuarios: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leyendo encabezado de usuarios: %w", err)
	}
	cols, err := columnIndex(header, "user_id", "age", "gender")
	if err != nil {
		return nil, nil, err
	}

	var platformCols []string
	platformIdx := make(map[string]int)
	for i, name := range header {
		name = strings.TrimSpace(name)
		switch name {
		case "user_id", "age", "gender":
		default:
			platformCols = append(platformCols, name)
			platformIdx[name] = i
		}
	}

	var users []User
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("leyendo registro de usuario: %w", err)
		}
		line++

		uid, err := strconv.Atoi(strings.TrimSpace(rec[cols["user_id"]]))
		if err != nil {
			return nil, nil, fmt.Errorf("usuarios línea %d: user_id inválido: %w", line, err)
		}
		age, err := strconv.Atoi(strings.TrimSpace(rec[cols["age"]]))
		if err != nil {
			return nil, nil, fmt.Errorf("usuarios línea %d: age inválido: %w", line, err)
		}

		flags := make(map[string]bool, len(platformCols))
		for _, name := range platformCols {
			v, err := ParseFlag(rec[platformIdx[name]])
			if err != nil {
				return nil, nil, fmt.Errorf("usuarios línea %d, columna %s: %w", line, name, err)
			}
			flags[name] = v
		}

		users = append(users, User{
			UserID:    uid,
			Age:       age,
			Gender:    strings.TrimSpace(rec[cols["gender"]]),
			Platforms: flags,
		})
	}

	return users, platformCols, nil
}

// LoadRatings lee el log de interacciones (user_id, show_id, rating).
func LoadRatings(path string) ([]Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo archivo de ratings: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leyendo encabezado de ratings: %w", err)
	}
	cols, err := columnIndex(header, "user_id", "show_id", "rating")
	if err != nil {
		return nil, err
	}

	var ratings []Rating
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leyendo registro de rating: %w", err)
		}
		line++

		uid, err := strconv.Atoi(strings.TrimSpace(rec[cols["user_id"]]))
		if err != nil {
			return nil, fmt.Errorf("ratings línea %d: user_id inválido: %w", line, err)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(rec[cols["rating"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("ratings línea %d: rating inválido: %w", line, err)
		}

		ratings = append(ratings, Rating{
			UserID: uid,
			ShowID: strings.TrimSpace(rec[cols["show_id"]]),
			Rating: val,
		})
	}

	return ratings, nil
}

// LoadTitles lee el catálogo (show_id, title, genres). La columna genres
// viene como literal de lista, p. ej. ['Dramas', "Kids' TV"].
func LoadTitles(path string) (map[string]Title, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo archivo de títulos: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leyendo encabezado de títulos: %w", err)
	}
	cols, err := columnIndex(header, "show_id", "title", "genres")
	if err != nil {
		return nil, err
	}

	titles := make(map[string]Title, 1<<12)
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leyendo registro de título: %w", err)
		}
		line++

		genres, err := ParseGenreList(rec[cols["genres"]])
		if err != nil {
			return nil, fmt.Errorf("títulos línea %d: %w", line, err)
		}

		id := strings.TrimSpace(rec[cols["show_id"]])
		titles[id] = Title{
			ShowID: id,
			Title:  rec[cols["title"]],
			Genres: genres,
		}
	}

	return titles, nil
}

// columnIndex valida que el encabezado tenga las columnas requeridas y
// devuelve su posición.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("dataset: falta la columna requerida %q", name)
		}
	}
	return idx, nil
}

// ParseFlag normaliza un valor de plataforma a booleano.
func ParseFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "si", "sí":
		return true, nil
	case "0", "false", "no", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("dataset: valor de flag no booleano %q", raw)
}

// ParseGenreList parses a Python-style list literal of quoted strings.
// Both quote styles appear in the data because the upstream export used
// repr(), so ['Dramas'] and ["Kids' TV"] are valid.
func ParseGenreList(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("dataset: literal de géneros inválido %q", raw)
	}
	s = s[1 : len(s)-1]

	genres := []string{}
	i := 0
	for i < len(s) {
		c := s[i]
		if c == ' ' || c == ',' {
			i++
			continue
		}
		if c != '\'' && c != '"' {
			return nil, fmt.Errorf("dataset: literal de géneros inválido %q", raw)
		}
		quote := c
		i++
		var b strings.Builder
		closed := false
		for i < len(s) {
			if s[i] == '\\' && i+1 < len(s) {
				b.WriteByte(s[i+1])
				i += 2
				continue
			}
			if s[i] == quote {
				closed = true
				i++
				break
			}
			b.WriteByte(s[i])
			i++
		}
		if !closed {
			return nil, fmt.Errorf("dataset: literal de géneros sin cerrar %q", raw)
		}
		genres = append(genres, b.String())
	}

	return genres, nil
}
