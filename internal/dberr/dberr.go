// Package dberr classifies database driver errors for log context.
package dberr

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Class string

const (
	ClassConstraint Class = "constraint"
	ClassConnection Class = "connection"
	ClassOther      Class = "other"
)

// mysql error numbers for duplicate key, missing parent/child row and NOT NULL.
var mysqlConstraintErrors = map[uint16]bool{
	1048: true,
	1062: true,
	1451: true,
	1452: true,
}

func Classify(err error) Class {
	if err == nil {
		return ""
	}
	if IsConstraintViolation(err) {
		return ClassConstraint
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, mysql.ErrInvalidConn) {
		return ClassConnection
	}
	return ClassOther
}

func IsConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23: integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "23")
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlConstraintErrors[myErr.Number]
	}
	return false
}
