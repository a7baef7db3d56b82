package models

import "time"

// ShipType is the closed set of vessel categories.
type ShipType string

const (
	ShipTypeBulkCarrier ShipType = "bulk carrier"
	ShipTypeFishing     ShipType = "fishing"
	ShipTypeSubmarine   ShipType = "submarine"
	ShipTypeTanker      ShipType = "tanker"
	ShipTypeCruiseShip  ShipType = "cruise ship"
)

// ShipTypes lists every accepted ShipType in display order.
var ShipTypes = []ShipType{
	ShipTypeBulkCarrier,
	ShipTypeFishing,
	ShipTypeSubmarine,
	ShipTypeTanker,
	ShipTypeCruiseShip,
}

func (t ShipType) Valid() bool {
	for _, known := range ShipTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Company owns persons and ships.
type Company struct {
	ID   int64   `db:"id" json:"id"`
	Name *string `db:"name" json:"name" validate:"omitempty,max=256"`
}

// Person is employed by exactly one company.
type Person struct {
	ID        int64   `db:"id" json:"id"`
	CompanyID int64   `db:"company_id" json:"company" validate:"required"`
	Name      *string `db:"name" json:"name" validate:"omitempty,max=256"`
	Email     *string `db:"email" json:"email" validate:"omitempty,max=256,email|len=0"`
	Phone     *string `db:"phone" json:"phone" validate:"omitempty,max=64"`
}

// Ship is operated by exactly one company. YearBuilt stays a string so that
// blank and null are both representable.
type Ship struct {
	ID           int64     `db:"id" json:"id"`
	CompanyID    int64     `db:"company_id" json:"company" validate:"required"`
	Name         *string   `db:"name" json:"name" validate:"omitempty,max=256"`
	Tonnage      *int64    `db:"tonnage" json:"tonnage" validate:"omitempty,gte=0"`
	MaxLoadDraft *int64    `db:"max_load_draft" json:"max_load_draft" validate:"omitempty,gte=0"`
	DryDraft     *int64    `db:"dry_draft" json:"dry_draft" validate:"omitempty,gte=0"`
	Flag         *string   `db:"flag" json:"flag" validate:"omitempty,max=256"`
	Beam         *int64    `db:"beam" json:"beam" validate:"omitempty,gte=0"`
	Length       *int64    `db:"length" json:"length" validate:"omitempty,gte=0"`
	YearBuilt    *string   `db:"year_built" json:"year_built" validate:"omitempty,year_built,max=4"`
	Type         *ShipType `db:"type" json:"type" validate:"omitempty,ship_type"`
}

// ShipView is the read shape of a ship: the stored columns plus its age.
type ShipView struct {
	Ship
	Age *int `json:"age"`
}

// ShipFilter narrows a ship listing. Empty fields do not filter.
type ShipFilter struct {
	Type   *ShipType
	Search string
}

type Harbour struct {
	ID            int64   `db:"id" json:"id"`
	Name          *string `db:"name" json:"name" validate:"omitempty,max=256"`
	MaxBerthDepth *int64  `db:"max_berth_depth" json:"max_berth_depth" validate:"omitempty,gte=0"`
	HarbourMaster *string `db:"harbour_master" json:"harbour_master" validate:"omitempty,max=256"`
	City          *string `db:"city" json:"city" validate:"omitempty,max=256"`
	Country       *string `db:"country" json:"country" validate:"omitempty,max=256"`
}

// HarbourSummary is the harbour list projection.
type HarbourSummary struct {
	ID            int64   `db:"id" json:"id"`
	Name          *string `db:"name" json:"name"`
	MaxBerthDepth *int64  `db:"max_berth_depth" json:"max_berth_depth"`
}

// HarbourDetails is a harbour together with the ships docked at it.
type HarbourDetails struct {
	Harbour
	CurrentShips []ShipView `json:"current_ships"`
}

// Visit records a ship's stay at a harbour.
type Visit struct {
	ID        int64      `db:"id" json:"id"`
	ShipID    int64      `db:"ship_id" json:"ship" validate:"required"`
	HarbourID int64      `db:"harbour_id" json:"harbour" validate:"required"`
	EntryTime *time.Time `db:"entry_time" json:"entry_time"`
	ExitTime  *time.Time `db:"exit_time" json:"exit_time"`
}

// ShipVisit is a visit as seen from the ship's side.
type ShipVisit struct {
	HarbourName *string    `db:"harbour_name" json:"harbour_name"`
	EntryTime   *time.Time `db:"entry_time" json:"entry_time"`
	ExitTime    *time.Time `db:"exit_time" json:"exit_time"`
}

func (h Harbour) Summary() HarbourSummary {
	return HarbourSummary{ID: h.ID, Name: h.Name, MaxBerthDepth: h.MaxBerthDepth}
}
