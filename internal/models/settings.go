package models

// Settings 站点级配置，从 settings.json 读取，当前没有写入接口
type Settings struct {
	ArticlesPerPage        int  `json:"articles_per_page"`
	AllowAnonymousComments bool `json:"allow_anonymous_comments"`
}

// DefaultSettings 配置文件缺失或损坏时的默认值
func DefaultSettings() *Settings {
	return &Settings{
		ArticlesPerPage:        10,
		AllowAnonymousComments: false,
	}
}
