package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/invoice-manager/internal/domain/repository"
)

// searchFields campos sobre los que se aplica la búsqueda de texto libre.
var searchFields = []string{"vendor.name", "invoice.number", "fileName"}

// buildFilter traduce el filtro de dominio a un documento de consulta.
// El texto se escapa: se busca como subcadena literal, sin distinguir mayúsculas.
func buildFilter(f repository.InvoiceFilter) bson.M {
	if f.Query == "" {
		return bson.M{}
	}
	rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
	or := make(bson.A, 0, len(searchFields))
	for _, field := range searchFields {
		or = append(or, bson.M{field: rx})
	}
	return bson.M{"$or": or}
}

// findOptions orden createdAt descendente y ventana skip/limit.
func findOptions(skip, limit int64) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return opts
}
