// Package clientconfig はフロントエンドが参照するAPIベースURLを決定する。
package clientconfig

// LocalAPIURL はローカル開発時のAPIベースURL。
const LocalAPIURL = "http://localhost:7137"

// Config はクライアントに配布する設定。
// JSONでは {"API_URL": "..."} または {"API_URL": null} となる。
type Config struct {
	APIURL *string `json:"API_URL"`
}

// Resolve はローカル実行かどうかからクライアント設定を決定する。
// ローカル以外ではURLを推測せず未設定（nil）のままにする。
func Resolve(isLocal bool) Config {
	if !isLocal {
		return Config{}
	}
	url := LocalAPIURL
	return Config{APIURL: &url}
}
