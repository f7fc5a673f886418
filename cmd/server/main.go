package main

import (
	"fmt"

	"terminal-terrace/knowledge-base/config"
	"terminal-terrace/knowledge-base/internal/database"
	"terminal-terrace/knowledge-base/internal/route"
)

func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")

	// 2. 初始化数据库
	database.InitDatabase()

	// 3. 设置路由
	r := route.SetupRouter(database.GetDB(), database.GetCache())

	// 4. 启动服务
	r.Run(fmt.Sprintf(":%d", config.Conf.Server.Port))
}
