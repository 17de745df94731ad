package kitchen

// OrderQueueLen is the number of live orders at the serving station.
const OrderQueueLen = 3

type Order struct {
	Name     string   `json:"name"`
	Requires []string `json:"requires"`
}

// drawOrder picks a recipe uniformly at random.
func (k *Kitchen) drawOrder() Order {
	list := k.cats.Recipes.List
	r := list[k.rng.Intn(len(list))]
	return Order{Name: r.Name, Requires: append([]string(nil), r.Requires...)}
}

// deliver adds one unit of ingredient to the stock and tries to fill the front order.
func (k *Kitchen) deliver(ingredient string) {
	idx, ok := k.cats.Ingredients.Index[ingredient]
	if !ok {
		return
	}
	k.stock[idx]++
	k.delivered++
	k.fillFront()
}

// fillFront consumes the front order if the stock covers it. Each required slot, duplicates
// included, takes its own unit.
func (k *Kitchen) fillFront() bool {
	if len(k.orders) == 0 {
		return false
	}
	need := map[uint16]int{}
	for _, ing := range k.orders[0].Requires {
		idx, ok := k.cats.Ingredients.Index[ing]
		if !ok {
			return false
		}
		need[idx]++
	}
	for idx, n := range need {
		if k.stock[idx] < n {
			return false
		}
	}
	for idx, n := range need {
		k.stock[idx] -= n
	}
	k.score++
	k.orders = append(k.orders[1:], k.drawOrder())
	return true
}
