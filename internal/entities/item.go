package entities

type Item struct {
	ID   string
	Name string
}

var itemCatalog = map[string]Item{
	"ITEM1": {ID: "ITEM1", Name: "Laptop"},
	"ITEM2": {ID: "ITEM2", Name: "Document"},
	"ITEM3": {ID: "ITEM3", Name: "Food"},
}

func ItemByID(id string) (Item, bool) {
	item, ok := itemCatalog[id]
	return item, ok
}
