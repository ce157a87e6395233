// internal/seed/dataset.go
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/javajoker/realestate-backend/internal/models"
)

var (
	kinds     = []string{"Casa", "Apartamento", "Penthouse", "Finca", "Casa Campestre", "Apartaestudio", "Local", "Bodega"}
	areas     = []string{"Chapinero", "Usaquén", "Cedritos", "La Calera", "Chía", "Teusaquillo", "El Poblado", "Laureles"}
	streets   = []string{"Calle", "Carrera", "Avenida", "Diagonal", "Transversal"}
	firstName = []string{"Ana", "Carlos", "Lucía", "Andrés", "Valentina", "Jorge", "Camila", "Felipe"}
	lastName  = []string{"Gómez", "Rodríguez", "Martínez", "López", "Hernández", "Restrepo"}
)

// Options shapes a generated dataset.
type Options struct {
	Properties       int
	Owners           int
	ImagesPerItem    int
	TracesPerItem    int
	Seed             int64
	DisabledEveryNth int
}

func DefaultOptions() Options {
	return Options{
		Properties:       40,
		Owners:           8,
		ImagesPerItem:    3,
		TracesPerItem:    2,
		Seed:             42,
		DisabledEveryNth: 3,
	}
}

// Generate builds a dataset whose content depends only on opts. Ids come
// from newID so they match the target store's format. Every fourth property
// has no owner.
func Generate(opts Options, newID func() string) models.Dataset {
	rng := rand.New(rand.NewSource(opts.Seed))
	dataset := models.Dataset{}

	for i := 0; i < opts.Owners; i++ {
		var photo *string
		if i%2 == 0 {
			p := fmt.Sprintf("owners/%02d.jpg", i+1)
			photo = &p
		}
		dataset.Owners = append(dataset.Owners, models.Owner{
			ID:       fmt.Sprintf("owner-%03d", i+1),
			Name:     firstName[rng.Intn(len(firstName))] + " " + lastName[rng.Intn(len(lastName))],
			Address:  address(rng),
			Photo:    photo,
			Birthday: time.Date(1950+rng.Intn(50), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC),
		})
	}

	imageCount := 0
	for i := 0; i < opts.Properties; i++ {
		property := models.Property{
			ID:           newID(),
			Name:         fmt.Sprintf("%s %s", kinds[rng.Intn(len(kinds))], areas[rng.Intn(len(areas))]),
			Address:      address(rng),
			Price:        float64(80+rng.Intn(1900)) * 1000,
			CodeInternal: fmt.Sprintf("RE-%04d", i+1),
			Year:         1970 + rng.Intn(55),
		}
		if len(dataset.Owners) > 0 && i%4 != 3 {
			property.OwnerID = dataset.Owners[i%len(dataset.Owners)].ID
		}
		dataset.Properties = append(dataset.Properties, property)

		for j := 0; j < opts.ImagesPerItem; j++ {
			imageCount++
			dataset.Images = append(dataset.Images, models.PropertyImage{
				ID:         newID(),
				PropertyID: property.ID,
				File:       fmt.Sprintf("https://images.example.com/properties/%s/%d.jpg", property.CodeInternal, j+1),
				Enabled:    opts.DisabledEveryNth <= 0 || imageCount%opts.DisabledEveryNth != 0,
			})
		}

		saleYear := 2024
		for j := 0; j < opts.TracesPerItem; j++ {
			saleYear -= 1 + rng.Intn(6)
			value := property.Price * 4000 * (0.6 + rng.Float64()*0.4)
			dataset.Traces = append(dataset.Traces, models.PropertyTrace{
				ID:         newID(),
				PropertyID: property.ID,
				DateSale:   time.Date(saleYear, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC),
				Name:       fmt.Sprintf("Venta %d", j+1),
				Value:      float64(int64(value)),
				Tax:        float64(int64(value * 0.015)),
			})
		}
	}

	return dataset
}

func address(rng *rand.Rand) string {
	return fmt.Sprintf("%s %d # %d-%d, %s", streets[rng.Intn(len(streets))], 1+rng.Intn(150), 1+rng.Intn(120), 1+rng.Intn(99), areas[rng.Intn(len(areas))])
}
