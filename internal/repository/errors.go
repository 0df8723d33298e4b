package repository

import "errors"

// 見つからない場合の共通エラー
var ErrNotFound = errors.New("not found")

// ユニーク制約に当たった場合
var ErrDuplicateKey = errors.New("duplicate key")
