package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = `
	t.id::text, t.title, t.description, t.status, t.priority,
	t.project_id::text, t.assigned_to::text, t.deadline, t.budget, t.attachments,
	t.approved_by_manager, t.payment_status, t.payment_screenshot,
	t.created_at, t.updated_at`

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Attachments == nil {
		t.Attachments = []string{}
	}
	if t.Payment.Status == "" {
		t.Payment.Status = model.PaymentPending
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks AS t (
			id, title, description, status, priority, project_id, assigned_to,
			deadline, budget, attachments, approved_by_manager, payment_status, payment_screenshot
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+taskColumns,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority), t.ProjectID, t.AssignedTo,
		t.Deadline, t.Budget, t.Attachments, t.ApprovedByManager, string(t.Payment.Status), t.Payment.ScreenShot,
	)
	created, err := scanTask(row)
	return created, mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id string) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.id = $1`, id)
	t, err := scanTask(row)
	return t, mapError(err)
}

const taskFilterWhere = `
	WHERE ($1::uuid IS NULL OR t.project_id = $1::uuid)
	  AND ($2::uuid IS NULL OR t.assigned_to = $2::uuid)
	  AND ($3::text IS NULL OR t.status = $3::text)
	  AND ($4::text = '' OR t.title ILIKE '%' || $4::text || '%')
	  AND ($5::boolean IS NULL OR t.approved_by_manager = $5::boolean)`

// List returns one page of matching tasks, newest first, and the total number
// of matches.
func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, int, error) {
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	var limit *int
	if filter.Limit > 0 {
		limit = &filter.Limit
	}
	args := []any{filter.ProjectID, filter.AssignedTo, status, filter.Search, filter.Approved}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks t`+taskFilterWhere, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+` FROM tasks t`+taskFilterWhere+`
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $6 OFFSET $7
	`, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var tr taskRow
		if err := rows.Scan(tr.dest()...); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, tr.task())
	}
	return tasks, total, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, id string, p model.TaskPatch) (model.Task, model.Status, error) {
	var status, priority *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}
	if p.Priority != nil {
		s := string(*p.Priority)
		priority = &s
	}

	row := r.pool.QueryRow(ctx, `
		WITH prev AS (
			SELECT id, status FROM tasks WHERE id = $1 FOR UPDATE
		)
		UPDATE tasks t
		SET title = COALESCE($2::text, t.title),
		    description = COALESCE($3::text, t.description),
		    status = COALESCE($4::text, t.status),
		    priority = COALESCE($5::text, t.priority),
		    project_id = COALESCE($6::uuid, t.project_id),
		    assigned_to = COALESCE($7::uuid, t.assigned_to),
		    deadline = COALESCE($8::timestamptz, t.deadline),
		    budget = COALESCE($9::double precision, t.budget),
		    attachments = COALESCE($10::text[], t.attachments),
		    updated_at = now()
		FROM prev
		WHERE t.id = prev.id
		RETURNING prev.status, `+taskColumns,
		id, p.Title, p.Description, status, priority, p.ProjectID, p.AssignedTo,
		p.Deadline, p.Budget, p.Attachments,
	)
	t, prev, err := scanTaskWithPrev(row)
	return t, prev, mapError(err)
}

func (r *TaskRepo) UpdateStatusForAssignee(ctx context.Context, id, assigneeID string, status model.Status) (model.Task, model.Status, error) {
	row := r.pool.QueryRow(ctx, `
		WITH prev AS (
			SELECT id, status FROM tasks WHERE id = $1 AND assigned_to = $2 FOR UPDATE
		)
		UPDATE tasks t
		SET status = $3, updated_at = now()
		FROM prev
		WHERE t.id = prev.id
		RETURNING prev.status, `+taskColumns,
		id, assigneeID, string(status),
	)
	t, prev, err := scanTaskWithPrev(row)
	return t, prev, mapError(err)
}

func (r *TaskRepo) SetApproval(ctx context.Context, id string, approved bool) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks t SET approved_by_manager = $2, updated_at = now()
		WHERE t.id = $1
		RETURNING `+taskColumns, id, approved)
	t, err := scanTask(row)
	return t, mapError(err)
}

func (r *TaskRepo) SetPayment(ctx context.Context, id string, p model.Payment) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks t SET payment_status = $2, payment_screenshot = $3, updated_at = now()
		WHERE t.id = $1
		RETURNING `+taskColumns, id, string(p.Status), p.ScreenShot)
	t, err := scanTask(row)
	return t, mapError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// taskRow holds the scan destinations for taskColumns.
type taskRow struct {
	t                         model.Task
	status, priority, payment string
}

func (r *taskRow) dest() []any {
	return []any{
		&r.t.ID, &r.t.Title, &r.t.Description, &r.status, &r.priority,
		&r.t.ProjectID, &r.t.AssignedTo, &r.t.Deadline, &r.t.Budget, &r.t.Attachments,
		&r.t.ApprovedByManager, &r.payment, &r.t.Payment.ScreenShot,
		&r.t.CreatedAt, &r.t.UpdatedAt,
	}
}

func (r *taskRow) task() model.Task {
	t := r.t
	t.Status = model.Status(r.status)
	t.Priority = model.Priority(r.priority)
	t.Payment.Status = model.PaymentStatus(r.payment)
	if t.Attachments == nil {
		t.Attachments = []string{}
	}
	return t
}

func scanTask(row pgx.Row) (model.Task, error) {
	var tr taskRow
	err := row.Scan(tr.dest()...)
	return tr.task(), err
}

// scanTaskWithPrev reads a leading previous-status column followed by taskColumns.
func scanTaskWithPrev(row pgx.Row) (model.Task, model.Status, error) {
	var (
		tr   taskRow
		prev string
	)
	err := row.Scan(append([]any{&prev}, tr.dest()...)...)
	return tr.task(), model.Status(prev), err
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrorConflict
		case "23503", "22P02":
			return ErrorNotFound
		}
	}
	return err
}
