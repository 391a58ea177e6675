package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

// GenerateRandomChineseName 分别返回姓和名
func GenerateRandomChineseName() (string, string) {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname, name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var genders = []string{"Male", "Female", "Other"}

// GenerateRandomDateOfBirth 生成 1990 到 2005 年之间的日期
func GenerateRandomDateOfBirth() string {
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	days := rand.Intn(16 * 365)
	return start.AddDate(0, 0, days).Format(time.DateOnly)
}

// GenerateRandomUser 生成一个普通求职者，密码统一为 password
func GenerateRandomUser(password string, bcryptCost int) (*domain.User, error) {
	surname, name := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(surname + name)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     surname + name,
		FirstName:    name,
		DateOfBirth:  GenerateRandomDateOfBirth(),
		Gender:       genders[rand.Intn(len(genders))],
		IsAdmin:      false,
	}

	return user, nil
}

var (
	jobTitles    = []string{"后端工程师", "前端工程师", "测试工程师", "运维工程师", "数据分析师", "产品经理", "UI 设计师", "算法工程师"}
	companies    = []string{"星辰科技", "蓝海网络", "云帆软件", "青木数据", "远山智能", "南风互娱"}
	locations    = []string{"广州", "深圳", "北京", "上海", "杭州", "成都", "远程"}
	requirements = []string{"本科及以上学历", "两年以上相关经验", "熟悉 Go 或 Java", "良好的沟通能力", "有团队合作精神", "熟悉 Linux"}
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

func GenerateRandomJob() *domain.Job {
	title := jobTitles[rand.Intn(len(jobTitles))]
	company := companies[rand.Intn(len(companies))]

	minSalary := rand.Intn(20) + 5
	maxSalary := minSalary + rand.Intn(10) + 1

	reqs := ""
	for i, req := range GenerateRandomSubset(requirements) {
		if i > 0 {
			reqs += "；"
		}
		reqs += req
	}

	return &domain.Job{
		Title:        title,
		Company:      company,
		Location:     locations[rand.Intn(len(locations))],
		Description:  fmt.Sprintf("%s 招聘%s，职位编号 %s", company, title, GenerateRandomID(3, 3)),
		Requirements: reqs,
		Salary:       fmt.Sprintf("%dk-%dk", minSalary, maxSalary),
	}
}

func GenerateRandomStatus() domain.ApplicationStatus {
	return domain.ApplicationStatuses[rand.Intn(len(domain.ApplicationStatuses))]
}

// 使用 Fisher-Yates 洗牌算法来生成一个非空的随机子集
func GenerateRandomSubset[T any](arr []T) []T {
	if len(arr) == 0 {
		return nil
	}

	arrCopy := append([]T{}, arr...) // 复制数组，避免修改原数组

	for i := 0; i < len(arrCopy)-1; i++ {
		j := rand.Intn(len(arrCopy)-i) + i
		arrCopy[i], arrCopy[j] = arrCopy[j], arrCopy[i]
	}

	l := rand.Intn(len(arrCopy)) + 1
	return arrCopy[:l]
}
