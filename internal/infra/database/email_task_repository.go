package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/xavierca1/cart-recovery/internal/entity"
)

type EmailTaskRepository struct {
	DB *sql.DB
}

func NewEmailTaskRepository(db *sql.DB) *EmailTaskRepository {
	return &EmailTaskRepository{DB: db}
}

// ListOpen carrega as tasks abertas com o estado atual do contato e do
// carrinho, como o processador consome
func (r *EmailTaskRepository) ListOpen(ctx context.Context) ([]entity.TaskWithContact, error) {
	query := `
		SELECT
			t.id,
			t.contact_id,
			t.sequence,
			t.origination,
			c.primary_email_address,
			c.first_name,
			c.last_name
		FROM email_tasks t
		JOIN contacts c ON c.contact_id = t.contact_id
		ORDER BY t.origination
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tasks: %w", err)
	}
	defer rows.Close()

	var tasks []entity.TaskWithContact
	var contactIDs []string

	for rows.Next() {
		var task entity.TaskWithContact
		var seq sql.NullInt64
		var email, first, last sql.NullString

		err := rows.Scan(
			&task.ID,
			&task.ContactID,
			&seq,
			&task.Origination,
			&email,
			&first,
			&last,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		if seq.Valid {
			v := int(seq.Int64)
			task.Sequence = &v
		}
		task.Contact = entity.Contact{
			ContactID:           task.ContactID,
			PrimaryEmailAddress: email.String,
			FirstName:           first.String,
			LastName:            last.String,
		}

		tasks = append(tasks, task)
		contactIDs = append(contactIDs, task.ContactID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(tasks) == 0 {
		return tasks, nil
	}

	// Itens do carrinho numa segunda consulta (uma por rodada, não por task)
	items, err := r.loadCartItems(ctx, contactIDs)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Items = items[tasks[i].ContactID]
	}

	return tasks, nil
}

func (r *EmailTaskRepository) loadCartItems(ctx context.Context, contactIDs []string) (map[string][]entity.CartItem, error) {
	query := `
		SELECT contact_id, product_id, description, quantity, unit_price, image_url
		FROM cart_items
		WHERE contact_id = ANY($1)
	`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(contactIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]entity.CartItem)
	for rows.Next() {
		var contactID string
		var item entity.CartItem
		var imageURL sql.NullString

		err := rows.Scan(&contactID, &item.ProductID, &item.Description, &item.Quantity, &item.UnitPrice, &imageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.ImageURL = imageURL.String
		items[contactID] = append(items[contactID], item)
	}
	return items, rows.Err()
}

// ListNotIn retorna as tasks cujo contato NÃO está no conjunto informado.
// Conjunto vazio = nenhum carrinho abandonado: todas as tasks estão órfãs.
func (r *EmailTaskRepository) ListNotIn(ctx context.Context, contactIDs []string) ([]entity.EmailTask, error) {
	query := `SELECT id, contact_id, sequence, origination FROM email_tasks`
	args := []interface{}{}
	if len(contactIDs) > 0 {
		query += ` WHERE contact_id != ALL($1)`
		args = append(args, pq.Array(contactIDs))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale tasks: %w", err)
	}
	defer rows.Close()

	var tasks []entity.EmailTask
	for rows.Next() {
		var task entity.EmailTask
		var seq sql.NullInt64

		if err := rows.Scan(&task.ID, &task.ContactID, &seq, &task.Origination); err != nil {
			return nil, fmt.Errorf("failed to scan stale task: %w", err)
		}
		if seq.Valid {
			v := int(seq.Int64)
			task.Sequence = &v
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// InsertIfAbsent cria a task; contato que já tem task aberta é no-op
// (unicidade garantida pelo índice em contact_id)
func (r *EmailTaskRepository) InsertIfAbsent(ctx context.Context, task *entity.EmailTask) error {
	query := `
		INSERT INTO email_tasks (id, contact_id, sequence, origination)
		VALUES ($1, $2, NULL, $3)
		ON CONFLICT (contact_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, task.ID, task.ContactID, task.Origination)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// DeleteNotIn apaga as tasks fora do conjunto. Conjunto vazio apaga TODAS.
func (r *EmailTaskRepository) DeleteNotIn(ctx context.Context, contactIDs []string) error {
	if len(contactIDs) == 0 {
		_, err := r.DB.ExecContext(ctx, `DELETE FROM email_tasks`)
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM email_tasks WHERE contact_id != ALL($1)`,
		pq.Array(contactIDs),
	)
	return err
}

func (r *EmailTaskRepository) UpdateSequence(ctx context.Context, taskID string, sequence int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE email_tasks SET sequence = $1 WHERE id = $2`,
		sequence, taskID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

func (r *EmailTaskRepository) Delete(ctx context.Context, taskID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM email_tasks WHERE id = $1`, taskID)
	return err
}
