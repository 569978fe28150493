package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre la colección invoices.
type InvoiceRepo struct {
	coll *mongo.Collection
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(c *Client) *InvoiceRepo {
	return &InvoiceRepo{coll: c.Database().Collection(c.cfg.InvoicesCollection)}
}

// invoiceDocument forma persistida: el _id es un ObjectID; el resto son los campos de la entidad.
type invoiceDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	entity.Invoice `bson:",inline"`
}

func (d *invoiceDocument) toEntity() *entity.Invoice {
	inv := d.Invoice
	inv.ID = d.ID.Hex()
	return &inv
}

// Find devuelve la página pedida y el total de coincidencias.
func (r *InvoiceRepo) Find(ctx context.Context, filter repository.InvoiceFilter, skip, limit int64) ([]*entity.Invoice, int64, error) {
	q := buildFilter(filter)

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	cur, err := r.coll.Find(ctx, q, findOptions(skip, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("find invoices: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*entity.Invoice, 0)
	for cur.Next(ctx) {
		var doc invoiceDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode invoice: %w", err)
		}
		out = append(out, doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterar invoices: %w", err)
	}
	return out, total, nil
}

// FindByID obtiene una factura por id.
func (r *InvoiceRepo) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc invoiceDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return doc.toEntity(), nil
}

// Insert persiste una factura nueva y devuelve su id.
func (r *InvoiceRepo) Insert(ctx context.Context, invoice *entity.Invoice) (string, error) {
	doc := invoiceDocument{Invoice: *invoice}
	doc.Invoice.ID = ""
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert invoice: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert invoice: id inesperado %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Update aplica $set sobre los campos presentes y devuelve el documento ya actualizado.
func (r *InvoiceRepo) Update(ctx context.Context, id string, patch entity.InvoicePatch) (*entity.Invoice, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.FileID != nil {
		set["fileId"] = *patch.FileID
	}
	if patch.FileName != nil {
		set["fileName"] = *patch.FileName
	}
	if patch.Vendor != nil {
		set["vendor"] = *patch.Vendor
	}
	if patch.Invoice != nil {
		set["invoice"] = *patch.Invoice
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc invoiceDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return doc.toEntity(), nil
}

// Delete elimina la factura; ErrNotFound si no existía.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReferencedFileIDs valores distintos de fileId en la colección.
func (r *InvoiceRepo) ReferencedFileIDs(ctx context.Context) (map[string]struct{}, error) {
	vals, err := r.coll.Distinct(ctx, "fileId", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct fileId: %w", err)
	}
	out := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			out[s] = struct{}{}
		}
	}
	return out, nil
}
