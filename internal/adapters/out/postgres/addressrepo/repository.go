package addressrepo

import (
	"context"
	"errors"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAddressRepository implements AddressProvider backed by the addresses
// table populated at account and request creation time.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// GetCoordinates returns the geocoded coordinate for the given address id.
// A missing row and a row without stored coordinates are reported the same
// way, as an errs.ErrObjectNotFound match, because both mean the location
// cannot participate in distance computation.
func (r *GormAddressRepository) GetCoordinates(ctx context.Context, addressID kernel.UUID) (kernel.GeoPoint, error) {
	if err := addressID.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", addressID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.GeoPoint{}, errs.NewObjectNotFoundError("address", addressID.String())
		}
		return kernel.GeoPoint{}, err
	}

	if dto.Latitude == nil || dto.Longitude == nil {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("address coordinates", addressID.String())
	}

	return kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
}

// Put upserts an address record with its geocoded coordinate. Pass a nil
// coordinate when geocoding failed; the address is then stored without
// coordinates and excluded from matching until re-geocoded.
func (r *GormAddressRepository) Put(ctx context.Context, addressID kernel.UUID, line, city, postcode string, coordinate *kernel.GeoPoint) error {
	if err := addressID.Validate(); err != nil {
		return err
	}

	dto := AddressDTO{
		ID:        addressID.Bytes(),
		Line:      line,
		City:      city,
		Postcode:  postcode,
		CreatedAt: time.Now().UTC(),
	}
	if coordinate != nil {
		if err := coordinate.Validate(); err != nil {
			return err
		}
		lat := coordinate.Lat()
		lon := coordinate.Lon()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"line", "city", "postcode", "latitude", "longitude"}),
	}).Create(&dto).Error
}
