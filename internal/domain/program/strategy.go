package program

// PricingStrategy computes what a given entered quantity costs and how
// many tickets it yields under one offer configuration. The three
// methods always agree with each other for the same quantity.
type PricingStrategy interface {
	Cost(quantity int) float64
	FreeCount(quantity int) int
	TotalTickets(quantity int) int
}

// StrategyFor picks the strategy for the program's effective offer.
// Malformed or missing offer fields degrade to flat base pricing.
func StrategyFor(p *Program) PricingStrategy {
	switch p.EffectiveOfferType() {
	case OfferBOGO:
		if p.bogoBuyQuantity <= 0 || p.bogoGetFreeQuantity <= 0 {
			return flatPricing{price: p.price}
		}
		if p.EffectiveBogoLogic() == EnterTotalPayLess {
			return enterTotalPayLess{price: p.price, buyQty: p.bogoBuyQuantity, freeQty: p.bogoGetFreeQuantity}
		}
		return buyXGetYFree{price: p.price, buyQty: p.bogoBuyQuantity, freeQty: p.bogoGetFreeQuantity}
	case OfferBulkDiscount:
		if p.bulkQuantity <= 0 || p.bulkPercentage <= 0 || p.bulkPercentage > 100 {
			return flatPricing{price: p.price}
		}
		return bulkDiscount{price: p.price, threshold: p.bulkQuantity, percentage: p.bulkPercentage}
	default:
		return flatPricing{price: p.price}
	}
}

func CalculateCost(p *Program, quantity int) float64 {
	if quantity <= 0 {
		return 0
	}
	return StrategyFor(p).Cost(quantity)
}

func CalculateFreeTickets(p *Program, quantity int) int {
	if quantity <= 0 {
		return 0
	}
	return StrategyFor(p).FreeCount(quantity)
}

func CalculateTotalTickets(p *Program, quantity int) int {
	if quantity <= 0 {
		return 0
	}
	return StrategyFor(p).TotalTickets(quantity)
}

type flatPricing struct {
	price float64
}

func (s flatPricing) Cost(quantity int) float64 {
	return s.price * float64(quantity)
}

func (s flatPricing) FreeCount(int) int { return 0 }

func (s flatPricing) TotalTickets(quantity int) int { return quantity }

// buyXGetYFree charges the full entered quantity; the free tickets are
// added on top rather than discounted from payment. The member pays for
// N and receives N plus the earned free tickets.
type buyXGetYFree struct {
	price   float64
	buyQty  int
	freeQty int
}

func (s buyXGetYFree) Cost(quantity int) float64 {
	return s.price * float64(quantity)
}

func (s buyXGetYFree) FreeCount(quantity int) int {
	if quantity < s.buyQty {
		return 0
	}
	return (quantity / s.buyQty) * s.freeQty
}

func (s buyXGetYFree) TotalTickets(quantity int) int {
	return quantity + s.FreeCount(quantity)
}

// enterTotalPayLess reads the entered quantity as the total tickets the
// member wants. Complete blocks of buyQty+freeQty are charged at buyQty;
// the remainder is charged in full. Total tickets equal the entered
// quantity since the free tickets are embedded in it.
type enterTotalPayLess struct {
	price   float64
	buyQty  int
	freeQty int
}

func (s enterTotalPayLess) blockSize() int {
	return s.buyQty + s.freeQty
}

func (s enterTotalPayLess) Cost(quantity int) float64 {
	if quantity < s.blockSize() {
		return s.price * float64(quantity)
	}
	blocks := quantity / s.blockSize()
	remainder := quantity % s.blockSize()
	charged := blocks*s.buyQty + remainder
	return s.price * float64(charged)
}

func (s enterTotalPayLess) FreeCount(quantity int) int {
	if quantity < s.blockSize() {
		return 0
	}
	return (quantity / s.blockSize()) * s.freeQty
}

func (s enterTotalPayLess) TotalTickets(quantity int) int {
	return quantity
}

type bulkDiscount struct {
	price      float64
	threshold  int
	percentage float64
}

func (s bulkDiscount) Cost(quantity int) float64 {
	base := s.price * float64(quantity)
	if quantity < s.threshold {
		return base
	}
	return base * (1 - s.percentage/100)
}

func (s bulkDiscount) FreeCount(int) int { return 0 }

func (s bulkDiscount) TotalTickets(quantity int) int { return quantity }
