package model

// DemoUserID 演示账号ID，无Token的请求一律按该用户处理
const DemoUserID uint = 1

// swagger:model User
type User struct {
	BaseModel
	Username           string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email              string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password           string `gorm:"size:100;not null" json:"-"`
	FullName           string `gorm:"size:100" json:"fullName"`
	TotalXP            int    `gorm:"default:0" json:"totalXP"`
	CurrentStreak      int    `gorm:"default:0" json:"currentStreak"`
	LongestStreak      int    `gorm:"default:0" json:"longestStreak"`
	EmailNotifications bool   `gorm:"default:true" json:"emailNotifications"`
}

func (User) TableName() string {
	return "users"
}
