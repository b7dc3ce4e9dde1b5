package pokeapi

import (
	"errors"
	"strings"
)

// NamedResource is the {name, url} pair PokéAPI uses for every reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListEntry is a single row of a list page.
type ListEntry = NamedResource

// ListPage mirrors GET /pokemon?limit=&offset=.
type ListPage struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  []ListEntry `json:"results"`
}

// Detail mirrors the subset of GET /pokemon/{name} that pokesearch reads.
type Detail struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	BaseExperience int           `json:"base_experience"`
	Abilities      []AbilitySlot `json:"abilities"`
	Types          []TypeSlot    `json:"types"`
}

// AbilitySlot is one entry of Detail.Abilities.
type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// TypeSlot is one entry of Detail.Types.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// AbilityNames returns ability names in payload order, skipping blanks.
func (d Detail) AbilityNames() []string {
	names := make([]string, 0, len(d.Abilities))
	for _, a := range d.Abilities {
		name := strings.TrimSpace(a.Ability.Name)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// TypeNames returns type names in payload order, skipping blanks.
func (d Detail) TypeNames() []string {
	names := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		name := strings.TrimSpace(t.Type.Name)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// ErrShape reports a response body that decoded but does not look like the expected resource.
var ErrShape = errors.New("unexpected response shape")

func (p *ListPage) validate() error {
	if p.Results == nil {
		return errors.Join(ErrShape, errors.New("list page has no results field"))
	}
	if p.Count < 0 {
		return errors.Join(ErrShape, errors.New("list page has negative count"))
	}
	return nil
}

func (d *Detail) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.Join(ErrShape, errors.New("detail has no name"))
	}
	return nil
}
