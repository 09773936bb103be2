package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// InventorySeed is a YAML bulk-load document for the inventory surface.
//
// Expected layout:
//
//	classifications:
//	  - Sport
//	vehicles:
//	  - classification: Sport
//	    make: Lamborghini
//	    model: Adventador
//	    year: 2016
//	    price: 417650
//	    miles: 71003
//	    color: Blue
type InventorySeed struct {
	Classifications []string      `yaml:"classifications"`
	Vehicles        []SeedVehicle `yaml:"vehicles"`
}

type SeedVehicle struct {
	Classification string `yaml:"classification"`
	Make           string `yaml:"make"`
	Model          string `yaml:"model"`
	Year           int    `yaml:"year"`
	Description    string `yaml:"description"`
	Image          string `yaml:"image"`
	Thumbnail      string `yaml:"thumbnail"`
	Price          int64  `yaml:"price"`
	Miles          int64  `yaml:"miles"`
	Color          string `yaml:"color"`
}

// ParseInventorySeed decodes and sanity-checks a seed document.
func ParseInventorySeed(data []byte) (InventorySeed, error) {
	if len(data) == 0 {
		return InventorySeed{}, errors.New("seed document is empty")
	}

	var seed InventorySeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return InventorySeed{}, fmt.Errorf("invalid seed document: %w", err)
	}

	for i, name := range seed.Classifications {
		if name == "" || !alphanumeric(name) {
			return InventorySeed{}, fmt.Errorf("classifications[%d]: name must be alphanumeric", i)
		}
	}
	for i, v := range seed.Vehicles {
		switch {
		case v.Classification == "":
			return InventorySeed{}, fmt.Errorf("vehicles[%d]: classification is required", i)
		case v.Make == "" || v.Model == "":
			return InventorySeed{}, fmt.Errorf("vehicles[%d]: make and model are required", i)
		case v.Year < 1000 || v.Year > 9999:
			return InventorySeed{}, fmt.Errorf("vehicles[%d]: year must be 4 digits", i)
		case v.Price < 0 || v.Miles < 0:
			return InventorySeed{}, fmt.Errorf("vehicles[%d]: price and miles must not be negative", i)
		}
	}
	return seed, nil
}

// LoadInventorySeed reads a seed file and inserts its classifications and
// vehicles. Classifications that already exist are reused rather than
// duplicated.
func LoadInventorySeed(ctx context.Context, path string, inventory InventoryRepository, cache *ClassificationCache) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	seed, err := ParseInventorySeed(data)
	if err != nil {
		return err
	}

	ids := map[string]int64{}
	ensure := func(name string) (int64, error) {
		if id, ok := ids[name]; ok {
			return id, nil
		}
		existing, err := inventory.ClassificationByName(ctx, name)
		if err == nil {
			ids[name] = existing.ID
			return existing.ID, nil
		}
		if !errors.Is(err, ErrClassificationNotFound) {
			return 0, err
		}
		id, err := inventory.CreateClassification(ctx, name)
		if err != nil {
			if errors.Is(err, ErrDuplicateClassification) {
				// Raced with another writer; look it up again.
				existing, lookupErr := inventory.ClassificationByName(ctx, name)
				if lookupErr != nil {
					return 0, lookupErr
				}
				ids[name] = existing.ID
				return existing.ID, nil
			}
			return 0, err
		}
		ids[name] = id
		return id, nil
	}

	for _, name := range seed.Classifications {
		if _, err := ensure(name); err != nil {
			return err
		}
	}

	for _, v := range seed.Vehicles {
		classificationID, err := ensure(v.Classification)
		if err != nil {
			return err
		}
		record := VehicleRecord{
			ClassificationID: classificationID,
			Make:             v.Make,
			Model:            v.Model,
			Year:             v.Year,
			Description:      v.Description,
			Image:            v.Image,
			Thumbnail:        v.Thumbnail,
			Price:            v.Price,
			Miles:            v.Miles,
			Color:            v.Color,
		}
		if _, err := inventory.CreateVehicle(ctx, record); err != nil {
			return err
		}
	}

	cache.Invalidate(ctx)
	log.Printf("inventory seed loaded: %d classifications, %d vehicles", len(ids), len(seed.Vehicles))
	return nil
}
