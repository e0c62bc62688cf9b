package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	CommandServe   Command = "serve"
	CommandMigrate Command = "migrate"
	// CommandHealthcheck はdistrolessイメージのHEALTHCHECKから呼ばれる。
	CommandHealthcheck Command = "healthcheck"
)

// knownCommands はサブコマンド名と設定読み込みの要否。
// healthcheckはSERVER_PORTのみ参照するため.envや必須変数を要求しない。
var knownCommands = map[Command]bool{
	CommandServe:       true,
	CommandMigrate:     true,
	CommandHealthcheck: false,
}

// ParseCommand は先頭の引数をサブコマンドとして解釈する。
// 未知の値や空の引数はCommandServeとして扱い、残りの引数は無視する。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}
	cmd := Command(args[0])
	if _, ok := knownCommands[cmd]; !ok {
		return CommandServe
	}
	return cmd
}

// NeedsConfig はコマンドの実行前にConfigの読み込みが必要かを返す。
func (c Command) NeedsConfig() bool {
	return knownCommands[c]
}
