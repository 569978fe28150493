package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"

	"github.com/jhoicas/invoice-manager/internal/domain"
)

// parseID convierte un id hexadecimal en ObjectID. Un id mal formado equivale a no encontrado.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

// isNotFound reconoce los errores "no existe" del driver y de GridFS.
func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, gridfs.ErrFileNotFound)
}
