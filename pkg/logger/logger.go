package logger

import (
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
)

// Log 全局的、配置好的logrus实例
var Log *logrus.Logger

// InitLogger 初始化全局Logger：JSON格式，同时写控制台和文件
func InitLogger() {
	Log = logrus.New()

	// 结构化日志，方便ELK/Loki类工具收集
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	file, err := os.OpenFile("vega_tube.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("无法打开日志文件: %v", err)
	}
	Log.SetOutput(io.MultiWriter(os.Stdout, file))

	Log.SetLevel(logrus.InfoLevel)
}
