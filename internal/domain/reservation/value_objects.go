package reservation

import (
	"strings"
)

type Player struct {
	name string
	age  int
}

func NewPlayer(name string, age int) (Player, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return Player{}, ErrMissingPlayerName
	}
	if age < 0 {
		return Player{}, ErrInvalidAge
	}
	return Player{name: n, age: age}, nil
}

func (p Player) Name() string { return p.name }
func (p Player) Age() int     { return p.age }

// Contact fields are opaque; only presence is checked.
type Contact struct {
	guardianName string
	phone        string
	email        string
}

func NewContact(guardianName, phone, email string) (Contact, error) {
	c := Contact{
		guardianName: strings.TrimSpace(guardianName),
		phone:        strings.TrimSpace(phone),
		email:        strings.TrimSpace(email),
	}
	if c.guardianName == "" || c.phone == "" || c.email == "" {
		return Contact{}, ErrIncompleteContact
	}
	return c, nil
}

func (c Contact) GuardianName() string { return c.guardianName }
func (c Contact) Phone() string        { return c.phone }
func (c Contact) Email() string        { return c.email }
