package store

import (
	"fmt"
	"strings"

	"basic-api/internal/model"
)

// assignment 是 SET 子句中的一項；expr 非空時直接使用 SQL 表達式，不佔用參數
type assignment struct {
	column string
	expr   string
	value  any
}

// updateBuilder 依序累積 SET 子句，值一律以 $n 參數傳遞
type updateBuilder struct {
	table string
	sets  []assignment
}

func (b *updateBuilder) set(column string, value any) *updateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *updateBuilder) setExpr(column, expr string) *updateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr})
	return b
}

// build 產生 UPDATE ... WHERE id = $n RETURNING ...，回傳 SQL 與依序對應的參數
func (b *updateBuilder) build(id int, returning string) (string, []any) {
	clauses := make([]string, 0, len(b.sets))
	args := make([]any, 0, len(b.sets)+1)
	for _, a := range b.sets {
		if a.expr != "" {
			clauses = append(clauses, fmt.Sprintf("%s = %s", a.column, a.expr))
			continue
		}
		args = append(args, a.value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", a.column, len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		b.table, strings.Join(clauses, ", "), len(args), returning)
	return query, args
}

// userUpdate 只為有提供的欄位加上 SET；updated_at 每次都會被觸碰
func userUpdate(id int, p model.UpdateUserParams) (string, []any) {
	b := &updateBuilder{table: "users"}
	if p.Name != nil {
		b.set("name", *p.Name)
	}
	if p.Email != nil {
		b.set("email", *p.Email)
	}
	b.setExpr("updated_at", "NOW()")
	return b.build(id, userColumns)
}
