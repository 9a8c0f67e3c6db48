package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/pgerrors"
)

var (
	// ErrBeginTx возвращается, если не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается, если не удалось зафиксировать транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrSerialization конфликт сериализуемой транзакции (SQLSTATE 40001)
	// Повтор не выполняется - решение принимает вызывающий код
	ErrSerialization = errors.New("txmanager: serialization failure")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функцию в транзакции, передавая её через контекст
// Репозитории получают транзакцию через dbmetrics.GetExecutor
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		if IsSerializationFailure(err) && !errors.Is(err, ErrSerialization) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return fmt.Errorf("%w: commit: %v", ErrSerialization, err)
		}
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	return nil
}

// IsSerializationFailure проверяет, что ошибка вызвана конфликтом сериализации PostgreSQL
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerialization) {
		return true
	}
	return pgerrors.IsSerializationFailure(err)
}
