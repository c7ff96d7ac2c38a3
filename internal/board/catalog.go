package board

import "sort"

// DefaultTheme is substituted for unknown theme keys.
const DefaultTheme = "usa"

// RailroadRent is indexed by the number of railroads the owner holds, minus one.
var RailroadRent = []int{25, 50, 100, 200}

type slot struct {
	kind  Kind
	group string
	price int
	rent  []int
	tax   int
}

// base is the shared layout every theme is built from.
var base = [Size]slot{
	{kind: KindGo},
	{kind: KindProperty, group: "brown", price: 60, rent: []int{2, 10, 30, 90, 160, 250}},
	{kind: KindChest},
	{kind: KindProperty, group: "brown", price: 60, rent: []int{4, 20, 60, 180, 320, 450}},
	{kind: KindTax, tax: 200},
	{kind: KindRailroad, price: 200, rent: RailroadRent},
	{kind: KindProperty, group: "lightblue", price: 100, rent: []int{6, 30, 90, 270, 400, 550}},
	{kind: KindChance},
	{kind: KindProperty, group: "lightblue", price: 100, rent: []int{6, 30, 90, 270, 400, 550}},
	{kind: KindProperty, group: "lightblue", price: 120, rent: []int{8, 40, 100, 300, 450, 600}},
	{kind: KindJail},
	{kind: KindProperty, group: "pink", price: 140, rent: []int{10, 50, 150, 450, 625, 750}},
	{kind: KindUtility, price: 150},
	{kind: KindProperty, group: "pink", price: 140, rent: []int{10, 50, 150, 450, 625, 750}},
	{kind: KindProperty, group: "pink", price: 160, rent: []int{12, 60, 180, 500, 700, 900}},
	{kind: KindRailroad, price: 200, rent: RailroadRent},
	{kind: KindProperty, group: "orange", price: 180, rent: []int{14, 70, 200, 550, 750, 950}},
	{kind: KindChest},
	{kind: KindProperty, group: "orange", price: 180, rent: []int{14, 70, 200, 550, 750, 950}},
	{kind: KindProperty, group: "orange", price: 200, rent: []int{16, 80, 220, 600, 800, 1000}},
	{kind: KindParking},
	{kind: KindProperty, group: "red", price: 220, rent: []int{18, 90, 250, 700, 875, 1050}},
	{kind: KindChance},
	{kind: KindProperty, group: "red", price: 220, rent: []int{18, 90, 250, 700, 875, 1050}},
	{kind: KindProperty, group: "red", price: 240, rent: []int{20, 100, 300, 750, 925, 1100}},
	{kind: KindRailroad, price: 200, rent: RailroadRent},
	{kind: KindProperty, group: "yellow", price: 260, rent: []int{22, 110, 330, 800, 975, 1150}},
	{kind: KindProperty, group: "yellow", price: 260, rent: []int{22, 110, 330, 800, 975, 1150}},
	{kind: KindUtility, price: 150},
	{kind: KindProperty, group: "yellow", price: 280, rent: []int{24, 120, 360, 850, 1025, 1200}},
	{kind: KindGoToJail},
	{kind: KindProperty, group: "green", price: 300, rent: []int{26, 130, 390, 900, 1100, 1275}},
	{kind: KindProperty, group: "green", price: 300, rent: []int{26, 130, 390, 900, 1100, 1275}},
	{kind: KindChest},
	{kind: KindProperty, group: "green", price: 320, rent: []int{28, 150, 450, 1000, 1200, 1400}},
	{kind: KindRailroad, price: 200, rent: RailroadRent},
	{kind: KindChance},
	{kind: KindProperty, group: "darkblue", price: 350, rent: []int{35, 175, 500, 1100, 1300, 1500}},
	{kind: KindTax, tax: 100},
	{kind: KindProperty, group: "darkblue", price: 400, rent: []int{50, 200, 600, 1400, 1700, 2000}},
}

// Build lays names over the base template.
func Build(key, name, currency string, names [Size]string) *Board {
	b := &Board{Key: key, Name: name, Currency: currency, Spaces: make([]Space, Size)}
	for i, s := range base {
		sp := Space{Index: i, Name: names[i], Kind: s.kind, Price: s.price, Group: s.group, Tax: s.tax}
		if len(s.rent) > 0 {
			sp.Rent = append([]int(nil), s.rent...)
		}
		b.Spaces[i] = sp
	}
	return b
}

type ThemeSummary struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	boards map[string]*Board
}

func NewCatalog(boards ...*Board) *Catalog {
	c := &Catalog{boards: make(map[string]*Board, len(boards))}
	for _, b := range boards {
		c.boards[b.Key] = b
	}
	return c
}

// DefaultCatalog holds every built-in theme.
func DefaultCatalog() *Catalog {
	boards := make([]*Board, 0, len(themes))
	for _, t := range themes {
		boards = append(boards, Build(t.key, t.name, t.currency, t.names))
	}
	return NewCatalog(boards...)
}

// Lookup never fails: unknown keys resolve to the default theme.
func (c *Catalog) Lookup(key string) *Board {
	if b, ok := c.boards[key]; ok {
		return b
	}
	if b, ok := c.boards[DefaultTheme]; ok {
		return b
	}
	for _, b := range c.boards {
		return b
	}
	return nil
}

func (c *Catalog) Themes() []ThemeSummary {
	out := make([]ThemeSummary, 0, len(c.boards))
	for _, b := range c.boards {
		out = append(out, ThemeSummary{Key: b.Key, Name: b.Name, Currency: b.Currency})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
