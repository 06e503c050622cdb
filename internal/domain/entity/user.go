package entity

// User es el actor que registra movimientos y transferencias.
type User struct {
	ID     string
	Name   string
	Email  string
	Active bool
}
