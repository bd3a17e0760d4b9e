package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/paperstack/paperstack/internal/domain/document"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/postgres"
	"github.com/paperstack/paperstack/internal/types"
)

type documentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewDocumentRepository(db *postgres.DB, logger *logger.Logger) document.Repository {
	return &documentRepository{db: db, logger: logger}
}

const documentColumns = `id, type, number, date, due_date, client, items, subtotal, tax, tax_amount,
	discount, shipping, total, amount_paid, balance_due, currency, notes, terms, footer,
	company_name, from_info, related_documents, owner_id, is_guest, ip_address, local_id,
	created_at, updated_at, created_by, updated_by`

func (r *documentRepository) Create(ctx context.Context, doc *document.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `) VALUES (
			:id, :type, :number, :date, :due_date, :client, :items, :subtotal, :tax, :tax_amount,
			:discount, :shipping, :total, :amount_paid, :balance_due, :currency, :notes, :terms, :footer,
			:company_name, :from_info, :related_documents, :owner_id, :is_guest, :ip_address, :local_id,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating document",
		"document_id", doc.ID,
		"type", doc.Type,
	)

	_, err := r.db.NamedExecContext(ctx, query, doc)
	return translate(err, "document", map[string]any{"document_id": doc.ID})
}

func (r *documentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	var doc document.Document
	err := r.db.GetContext(ctx, &doc, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	if err != nil {
		return nil, translate(err, "document", map[string]any{"document_id": id})
	}
	return &doc, nil
}

func (r *documentRepository) GetByLocalID(ctx context.Context, ownerID, localID string) (*document.Document, error) {
	var doc document.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT "+documentColumns+" FROM documents WHERE owner_id = ? AND local_id = ?",
		ownerID, localID,
	)
	if err != nil {
		return nil, translate(err, "document", map[string]any{"local_id": localID})
	}
	return &doc, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *document.Document) error {
	query := `
		UPDATE documents SET
			type = :type,
			number = :number,
			date = :date,
			due_date = :due_date,
			client = :client,
			items = :items,
			subtotal = :subtotal,
			tax = :tax,
			tax_amount = :tax_amount,
			discount = :discount,
			shipping = :shipping,
			total = :total,
			amount_paid = :amount_paid,
			balance_due = :balance_due,
			currency = :currency,
			notes = :notes,
			terms = :terms,
			footer = :footer,
			company_name = :company_name,
			from_info = :from_info,
			related_documents = :related_documents,
			local_id = :local_id,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating document", "document_id", doc.ID)

	result, err := r.db.NamedExecContext(ctx, query, doc)
	if err != nil {
		return translate(err, "document", map[string]any{"document_id": doc.ID})
	}
	return requireAffected(result, "document", doc.ID)
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting document", "document_id", id)

	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return translate(err, "document", map[string]any{"document_id": id})
	}
	return requireAffected(result, "document", id)
}

func (r *documentRepository) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	if filter == nil {
		filter = types.NewDocumentFilter()
	}

	where, args := documentConditions(filter)
	query := fmt.Sprintf("SELECT %s FROM documents %s ORDER BY %s %s",
		documentColumns, where, filter.GetSort(), strings.ToUpper(filter.GetOrder()))
	if !filter.IsUnlimited() {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.GetLimit(), filter.GetOffset())
	}

	docs := make([]*document.Document, 0)
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, translate(err, "document", nil)
	}
	return docs, nil
}

func (r *documentRepository) Count(ctx context.Context, filter *types.DocumentFilter) (int, error) {
	if filter == nil {
		filter = types.NewDocumentFilter()
	}

	where, args := documentConditions(filter)
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM documents "+where, args...); err != nil {
		return 0, translate(err, "document", nil)
	}
	return count, nil
}

// documentConditions scopes a listing to an owner, or to guest documents
// created from one address when no owner is given
func documentConditions(filter *types.DocumentFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	switch {
	case filter.OwnerID != "":
		conds = append(conds, "owner_id = ?")
		args = append(args, filter.OwnerID)
	case filter.GuestIP != "":
		conds = append(conds, "owner_id IS NULL", "ip_address = ?")
		args = append(args, filter.GuestIP)
	}

	if filter.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(filter.Type))
	}

	if len(filter.LocalIDs) > 0 {
		conds = append(conds, "local_id = ANY(?)")
		args = append(args, pq.Array(filter.LocalIDs))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
