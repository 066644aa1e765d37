package services

import "errors"

// サービス層のエラー。コントローラー側でHTTPステータスに変換する
var (
	ErrEmailOrPhoneTaken  = errors.New("メールアドレスまたは電話番号は既に登録されています")
	ErrInvalidCredentials = errors.New("メールアドレスまたはパスワードが正しくありません")
	ErrInvalidToken       = errors.New("無効または期限切れのトークンです")
	ErrUserNotFound       = errors.New("ユーザーが見つかりません")
	ErrPostNotFound       = errors.New("投稿が見つかりません")
	ErrInvalidUserID      = errors.New("無効なユーザーIDです")
	ErrEmptyComment       = errors.New("コメント内容は必須です")
	ErrBioTooLong         = errors.New("自己紹介は500文字以内で入力してください")
	ErrContentTooLong     = errors.New("投稿内容は1000文字以内で入力してください")
	ErrFileTooLarge       = errors.New("ファイルサイズが上限を超えています")
	ErrInvalidFileType    = errors.New("許可されていないファイル形式です")
	ErrTooManyFiles       = errors.New("添付ファイルの数が上限を超えています")
)
