package repo

import "context"

// TxExecutor 在单个数据库事务内执行 fn；fn 收到的 ctx 携带事务，
// 传给任何 repo 方法都会参与同一事务。
type TxExecutor interface {
	ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error
}
