package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 练习模式（9种）
const (
	ModeSequential     = "SEQUENTIAL"      // 顺序刷题
	ModeRandom         = "RANDOM"          // 随机刷题
	ModeChapter        = "CHAPTER"         // 章节练习
	ModeExam           = "EXAM"            // 模拟考试
	ModeWrongQuestion  = "WRONG_QUESTION"  // 错题强化
	ModeFavorite       = "FAVORITE"        // 收藏专练
	ModeChallenge      = "CHALLENGE"       // 闯关模式
	ModeTimed          = "TIMED"           // 限时挑战
	ModeSmartRecommend = "SMART_RECOMMEND" // 智能推荐
)

// 系统配置键（后台可动态修改，覆盖配置文件默认值）
const (
	ConfigKeyAIBaseURL = "ai.base_url"
	ConfigKeyAIAPIKey  = "ai.api_key"
	ConfigKeyAIModel   = "ai.model"
)

// 练习请求默认值
const (
	DefaultPracticeCount   = 20
	DefaultTimePerQuestion = 30 // 秒
	DefaultExamDuration    = 90 // 分钟
)

// 文件上传相关常量
const (
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedAttachmentExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".pdf"}
)
