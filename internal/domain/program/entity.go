package program

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTag      = errors.New("program tag cannot be empty")
	ErrNegativePrice = errors.New("program price cannot be negative")
)

type OfferType string

const (
	OfferNone         OfferType = "none"
	OfferBOGO         OfferType = "bogo"
	OfferBulkDiscount OfferType = "bulk_discount"
)

type BogoLogic string

const (
	// BuyXGetYFree: the member pays for the entered quantity and the free
	// tickets are granted on top of it.
	BuyXGetYFree BogoLogic = "buy_x_get_y_free"
	// EnterTotalPayLess: the entered quantity is the total tickets wanted
	// and complete BOGO blocks inside it are charged at the buy portion.
	EnterTotalPayLess BogoLogic = "enter_total_pay_less"
)

// Program is a purchasable ticket product. Tickets bought against a
// program are redeemable at any event carrying its tag. Immutable for
// the duration of a purchase session.
type Program struct {
	id        uuid.UUID
	tag       string
	name      string
	price     float64
	offerType OfferType

	// BOGO offer fields; zero when the offer does not apply. Legacy rows
	// may carry these with offerType "none".
	bogoBuyQuantity     int
	bogoGetFreeQuantity int
	bogoLogic           BogoLogic

	// Bulk discount fields; zero when the offer does not apply.
	bulkQuantity   int
	bulkPercentage float64

	createdAt time.Time
	updatedAt time.Time
}

type Spec struct {
	ID                  uuid.UUID
	Tag                 string
	Name                string
	Price               float64
	OfferType           OfferType
	BogoBuyQuantity     int
	BogoGetFreeQuantity int
	BogoLogic           BogoLogic
	BulkQuantity        int
	BulkPercentage      float64
}

func NewProgram(spec Spec) (*Program, error) {
	tag := strings.TrimSpace(spec.Tag)
	if tag == "" {
		return nil, ErrEmptyTag
	}
	if spec.Price < 0 {
		return nil, ErrNegativePrice
	}

	return &Program{
		id:                  spec.ID,
		tag:                 tag,
		name:                spec.Name,
		price:               spec.Price,
		offerType:           spec.OfferType,
		bogoBuyQuantity:     spec.BogoBuyQuantity,
		bogoGetFreeQuantity: spec.BogoGetFreeQuantity,
		bogoLogic:           spec.BogoLogic,
		bulkQuantity:        spec.BulkQuantity,
		bulkPercentage:      spec.BulkPercentage,
	}, nil
}

// ReconstructProgram rebuilds a Program from stored fields. Rows that
// would fail NewProgram validation are sanitized rather than rejected:
// pricing for a stored row must always resolve, falling back to flat
// base pricing when fields are unusable.
func ReconstructProgram(spec Spec, createdAt, updatedAt time.Time) *Program {
	p, err := NewProgram(spec)
	if err != nil {
		if strings.TrimSpace(spec.Tag) == "" {
			spec.Tag = spec.ID.String()
		}
		if spec.Price < 0 {
			spec.Price = 0
		}
		p, _ = NewProgram(spec)
	}
	p.createdAt = createdAt
	p.updatedAt = updatedAt
	return p
}

// EffectiveOfferType resolves the offer actually in force. An explicit
// offer type wins; otherwise populated legacy BOGO fields imply bogo and
// populated legacy bulk fields imply bulk_discount.
func (p *Program) EffectiveOfferType() OfferType {
	switch p.offerType {
	case OfferBOGO, OfferBulkDiscount:
		return p.offerType
	}
	if p.bogoBuyQuantity > 0 && p.bogoGetFreeQuantity > 0 {
		return OfferBOGO
	}
	if p.bulkQuantity > 0 && p.bulkPercentage > 0 {
		return OfferBulkDiscount
	}
	return OfferNone
}

// EffectiveBogoLogic defaults legacy rows without a logic variant to
// buy_x_get_y_free, which is how those rows behaved before the variant
// field existed.
func (p *Program) EffectiveBogoLogic() BogoLogic {
	if p.bogoLogic == EnterTotalPayLess {
		return EnterTotalPayLess
	}
	return BuyXGetYFree
}

func (p *Program) ID() uuid.UUID            { return p.id }
func (p *Program) Tag() string              { return p.tag }
func (p *Program) Name() string             { return p.name }
func (p *Program) Price() float64           { return p.price }
func (p *Program) OfferType() OfferType     { return p.offerType }
func (p *Program) BogoBuyQuantity() int     { return p.bogoBuyQuantity }
func (p *Program) BogoGetFreeQuantity() int { return p.bogoGetFreeQuantity }
func (p *Program) BulkQuantity() int        { return p.bulkQuantity }
func (p *Program) BulkPercentage() float64  { return p.bulkPercentage }
func (p *Program) CreatedAt() time.Time     { return p.createdAt }
func (p *Program) UpdatedAt() time.Time     { return p.updatedAt }
