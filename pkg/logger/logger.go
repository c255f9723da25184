package logger

import (
	"go.uber.org/zap"
)

var log = zap.NewNop()

// Init 按运行模式初始化全局 logger（release 用生产配置）
func Init(mode string) error {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	log = l
	return nil
}

// L 返回全局 logger（给需要注入 *zap.Logger 的组件）
func L() *zap.Logger { return log }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

// Sync 刷新缓冲日志，进程退出前调用
func Sync() { _ = log.Sync() }
