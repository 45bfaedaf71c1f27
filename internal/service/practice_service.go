package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"tiku_backend/internal/model"
	"tiku_backend/internal/repository"
	"tiku_backend/internal/util"
	"tiku_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PracticeRequest 开始刷题请求
type PracticeRequest struct {
	SubjectID        uint               `json:"subjectId" binding:"required"`
	Mode             string             `json:"mode" binding:"required"`
	ChapterID        uint               `json:"chapterId"`
	QuestionType     model.QuestionType `json:"questionType"`
	Difficulty       model.Difficulty   `json:"difficulty"`
	Count            int                `json:"count"`
	ContinueProgress bool               `json:"continueProgress"`
	ChallengeLevel   int                `json:"challengeLevel"`
	TimePerQuestion  int                `json:"timePerQuestion"` // 秒，限时挑战
	ExamDuration     int                `json:"examDuration"`    // 分钟，模拟考试
}

func (r *PracticeRequest) applyDefaults() {
	if r.Count <= 0 {
		r.Count = util.DefaultPracticeCount
	}
	if r.TimePerQuestion <= 0 {
		r.TimePerQuestion = util.DefaultTimePerQuestion
	}
	if r.ExamDuration <= 0 {
		r.ExamDuration = util.DefaultExamDuration
	}
	if r.ChallengeLevel <= 0 {
		r.ChallengeLevel = 1
	}
}

// QuestionDTO 下发给前端的题目，JSON字段已反序列化
type QuestionDTO struct {
	ID               uint               `json:"id"`
	SubjectID        uint               `json:"subjectId"`
	SubjectName      string             `json:"subjectName,omitempty"`
	ChapterID        uint               `json:"chapterId,omitempty"`
	ChapterName      string             `json:"chapterName,omitempty"`
	Type             model.QuestionType `json:"type"`
	Title            string             `json:"title"`
	Content          string             `json:"content,omitempty"`
	Difficulty       model.Difficulty   `json:"difficulty"`
	Score            float64            `json:"score"`
	Options          interface{}        `json:"options,omitempty"`
	Answer           interface{}        `json:"answer,omitempty"`
	AnswerAnalysis   string             `json:"answerAnalysis,omitempty"`
	AIGradingEnabled bool               `json:"aiGradingEnabled"`
}

// PracticeSession 刷题会话，不落库，会话进度由前端维护
type PracticeSession struct {
	SessionID           string        `json:"sessionId"`
	Mode                string        `json:"mode"`
	SubjectID           uint          `json:"subjectId"`
	SubjectName         string        `json:"subjectName"`
	ChapterID           uint          `json:"chapterId,omitempty"`
	ChapterName         string        `json:"chapterName,omitempty"`
	Questions           []QuestionDTO `json:"questions"`
	TotalCount          int           `json:"totalCount"`
	CurrentProgress     int           `json:"currentProgress"`
	StartTime           time.Time     `json:"startTime"`
	EndTime             *time.Time    `json:"endTime,omitempty"`
	ExamDuration        int           `json:"examDuration,omitempty"`
	TimePerQuestion     int           `json:"timePerQuestion,omitempty"`
	ChallengeLevel      int           `json:"challengeLevel,omitempty"`
	PassRequiredCorrect int           `json:"passRequiredCorrect,omitempty"`
	Tip                 string        `json:"tip"`
}

// PracticeService 刷题服务，实现9种刷题模式的选题与会话组装
type PracticeService struct {
	QuestionRepo      *repository.QuestionRepository
	SubjectRepo       *repository.SubjectRepository
	ChapterRepo       *repository.ChapterRepository
	AnswerRecordRepo  *repository.AnswerRecordRepository
	WrongQuestionRepo *repository.WrongQuestionRepository
	FavoriteRepo      *repository.FavoriteRepository
}

func NewPracticeService(
	questionRepo *repository.QuestionRepository,
	subjectRepo *repository.SubjectRepository,
	chapterRepo *repository.ChapterRepository,
	answerRecordRepo *repository.AnswerRecordRepository,
	wrongQuestionRepo *repository.WrongQuestionRepository,
	favoriteRepo *repository.FavoriteRepository,
) *PracticeService {
	return &PracticeService{
		QuestionRepo:      questionRepo,
		SubjectRepo:       subjectRepo,
		ChapterRepo:       chapterRepo,
		AnswerRecordRepo:  answerRecordRepo,
		WrongQuestionRepo: wrongQuestionRepo,
		FavoriteRepo:      favoriteRepo,
	}
}

// StartPractice 按模式选题并生成刷题会话
func (s *PracticeService) StartPractice(req *PracticeRequest, userID uint) (*PracticeSession, error) {
	req.applyDefaults()

	subject, err := s.SubjectRepo.FindByID(req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	var questions []model.Question
	switch req.Mode {
	case util.ModeSequential:
		questions, err = s.sequentialQuestions(req, userID)
	case util.ModeRandom:
		questions, err = s.randomQuestions(req)
	case util.ModeChapter:
		questions, err = s.chapterQuestions(req)
	case util.ModeExam:
		questions, err = s.examQuestions(req)
	case util.ModeWrongQuestion:
		questions, err = s.wrongQuestions(req, userID)
	case util.ModeFavorite:
		questions, err = s.favoriteQuestions(req, userID)
	case util.ModeChallenge:
		questions, err = s.challengeQuestions(req)
	case util.ModeTimed:
		questions, err = s.timedQuestions(req)
	case util.ModeSmartRecommend:
		questions, err = s.smartRecommendQuestions(req, userID)
	default:
		return nil, util.ErrUnknownPracticeMode
	}
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestionsAvailable
	}

	dtos, err := s.toDTOs(subject, questions)
	if err != nil {
		return nil, err
	}

	return s.buildSession(req, subject, dtos)
}

// 1. 顺序刷题：按学科内顺序号刷，续答时从最近进度处继续
func (s *PracticeService) sequentialQuestions(req *PracticeRequest, userID uint) ([]model.Question, error) {
	offset := 0
	if req.ContinueProgress {
		// 以近7天答题量估算进度，对齐到整页
		count, err := s.AnswerRecordRepo.CountSince(userID, time.Now().AddDate(0, 0, -7))
		if err != nil {
			return nil, err
		}
		offset = (int(count) / req.Count) * req.Count
	}

	return s.QuestionRepo.FindSequentialPage(repository.QuestionFilter{
		SubjectID:  req.SubjectID,
		ChapterID:  req.ChapterID,
		Type:       req.QuestionType,
		Difficulty: req.Difficulty,
	}, offset, req.Count)
}

// 2. 随机刷题
func (s *PracticeService) randomQuestions(req *PracticeRequest) ([]model.Question, error) {
	return s.QuestionRepo.FindRandom(repository.QuestionFilter{
		SubjectID: req.SubjectID,
		Type:      req.QuestionType,
	}, req.Count)
}

// 3. 章节练习
func (s *PracticeService) chapterQuestions(req *PracticeRequest) ([]model.Question, error) {
	if req.ChapterID == 0 {
		return nil, util.ErrChapterRequired
	}
	return s.QuestionRepo.FindRandom(repository.QuestionFilter{
		ChapterID: req.ChapterID,
	}, req.Count)
}

// 4. 模拟考试：各章节均摊抽题，余数分给靠前章节，汇总后打乱
func (s *PracticeService) examQuestions(req *PracticeRequest) ([]model.Question, error) {
	chapters, err := s.ChapterRepo.FindBySubjectID(req.SubjectID)
	if err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		return s.randomQuestions(req)
	}

	counts := examAllocations(req.Count, len(chapters))
	var all []model.Question
	for i, ch := range chapters {
		qs, err := s.QuestionRepo.FindRandom(repository.QuestionFilter{ChapterID: ch.ID}, counts[i])
		if err != nil {
			return nil, err
		}
		all = append(all, qs...)
	}

	rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	if len(all) > req.Count {
		all = all[:req.Count]
	}
	return all, nil
}

// examAllocations 每章节抽题数：均分后余数分给靠前章节，章节多于题量时每章至少1道
func examAllocations(total, chapterCount int) []int {
	per := total / chapterCount
	rem := total % chapterCount
	counts := make([]int, chapterCount)
	for i := range counts {
		n := per
		if i < rem {
			n++
		}
		if n < 1 {
			n = 1
		}
		counts[i] = n
	}
	return counts
}

// 5. 错题强化：优先易错题，没有则取反复错题，按错误次数从多到少
func (s *PracticeService) wrongQuestions(req *PracticeRequest, userID uint) ([]model.Question, error) {
	items, err := s.WrongQuestionRepo.FindByUserAndStatus(userID, model.WrongStatusWrong)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items, err = s.WrongQuestionRepo.FindByUserAndStatus(userID, model.WrongStatusRepeatedWrong)
		if err != nil {
			return nil, err
		}
	}
	if len(items) == 0 {
		return nil, util.ErrNoQuestionsAvailable
	}

	ids := make([]uint, 0, req.Count)
	for _, wq := range items {
		if len(ids) >= req.Count {
			break
		}
		ids = append(ids, wq.QuestionID)
	}

	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	return orderByIDs(questions, ids), nil
}

// 6. 收藏专练：只取当前学科下的收藏题
func (s *PracticeService) favoriteQuestions(req *PracticeRequest, userID uint) ([]model.Question, error) {
	ids, err := s.FavoriteRepo.QuestionIDsByUser(userID, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, util.ErrNoQuestionsAvailable
	}
	if len(ids) > req.Count {
		ids = ids[:req.Count]
	}

	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	return orderByIDs(questions, ids), nil
}

// orderByIDs 按给定ID顺序重排查询结果（IN查询不保证顺序）
func orderByIDs(questions []model.Question, ids []uint) []model.Question {
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]model.Question, 0, len(questions))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered
}

// 7. 闯关模式：关卡决定难度和题量，忽略请求里的count
func (s *PracticeService) challengeQuestions(req *PracticeRequest) ([]model.Question, error) {
	difficulty, count := challengeParams(req.ChallengeLevel)
	return s.QuestionRepo.FindFirst(repository.QuestionFilter{
		SubjectID:  req.SubjectID,
		Difficulty: difficulty,
	}, count)
}

// challengeParams 关卡到难度/题量的映射：1-3关简单10题，4-6关中等15题，7关起困难20题
func challengeParams(level int) (model.Difficulty, int) {
	switch {
	case level <= 3:
		return model.DifficultyEasy, 10
	case level <= 6:
		return model.DifficultyMedium, 15
	default:
		return model.DifficultyHard, 20
	}
}

// 8. 限时挑战：取中等难度
func (s *PracticeService) timedQuestions(req *PracticeRequest) ([]model.Question, error) {
	return s.QuestionRepo.FindFirst(repository.QuestionFilter{
		SubjectID:  req.SubjectID,
		Difficulty: model.DifficultyMedium,
	}, req.Count)
}

// chapterStat 章节答题正确率样本
type chapterStat struct {
	total   int
	correct int
}

// weakestChapter 正确率最低的章节，无样本时返回0；同率取ID较小者保证结果稳定
func weakestChapter(stats map[uint]chapterStat) uint {
	var weakest uint
	var weakestRate float64
	for id, st := range stats {
		if id == 0 || st.total == 0 {
			continue
		}
		rate := float64(st.correct) / float64(st.total)
		if weakest == 0 || rate < weakestRate || (rate == weakestRate && id < weakest) {
			weakest = id
			weakestRate = rate
		}
	}
	return weakest
}

// 9. 智能推荐：分析最近100条答题记录，推荐正确率最低章节的题目
func (s *PracticeService) smartRecommendQuestions(req *PracticeRequest, userID uint) ([]model.Question, error) {
	records, err := s.AnswerRecordRepo.FindRecentByUser(userID, 100)
	if err != nil {
		return nil, err
	}

	stats, err := s.chapterStats(records)
	if err != nil {
		return nil, err
	}

	if chapterID := weakestChapter(stats); chapterID > 0 {
		questions, err := s.QuestionRepo.FindRandom(repository.QuestionFilter{ChapterID: chapterID}, req.Count)
		if err != nil {
			return nil, err
		}
		if len(questions) > 0 {
			return questions, nil
		}
	}

	// 没有答题数据或薄弱章节无题，退化为随机推荐
	return s.randomQuestions(req)
}

func (s *PracticeService) chapterStats(records []model.AnswerRecord) (map[uint]chapterStat, error) {
	if len(records) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(records))
	seen := make(map[uint]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.QuestionID]; !ok {
			seen[r.QuestionID] = struct{}{}
			ids = append(ids, r.QuestionID)
		}
	}

	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	chapterOf := make(map[uint]uint, len(questions))
	for _, q := range questions {
		chapterOf[q.ID] = q.ChapterID
	}

	stats := make(map[uint]chapterStat)
	for _, r := range records {
		if r.IsCorrect == nil {
			continue
		}
		chapterID := chapterOf[r.QuestionID]
		st := stats[chapterID]
		st.total++
		if *r.IsCorrect {
			st.correct++
		}
		stats[chapterID] = st
	}
	return stats, nil
}

func (s *PracticeService) toDTOs(subject *model.Subject, questions []model.Question) ([]QuestionDTO, error) {
	chapters, err := s.ChapterRepo.FindBySubjectID(subject.ID)
	if err != nil {
		return nil, err
	}
	chapterNames := make(map[uint]string, len(chapters))
	for _, ch := range chapters {
		chapterNames[ch.ID] = ch.Name
	}

	dtos := make([]QuestionDTO, 0, len(questions))
	for _, q := range questions {
		dto := QuestionDTO{
			ID:               q.ID,
			SubjectID:        q.SubjectID,
			SubjectName:      subject.Name,
			ChapterID:        q.ChapterID,
			ChapterName:      chapterNames[q.ChapterID],
			Type:             q.Type,
			Title:            q.Title,
			Content:          q.Content,
			Difficulty:       q.Difficulty,
			Score:            q.Score,
			AnswerAnalysis:   q.AnswerAnalysis,
			AIGradingEnabled: q.AIGradingEnabled,
		}

		// JSON列反序列化后下发，格式异常时留空不阻断
		if q.Options != "" {
			if err := json.Unmarshal([]byte(q.Options), &dto.Options); err != nil {
				logger.Log.Warn("Question options unparseable", zap.Uint("questionID", q.ID), zap.Error(err))
			}
		}
		if q.Answer != "" {
			if err := json.Unmarshal([]byte(q.Answer), &dto.Answer); err != nil {
				logger.Log.Warn("Question answer unparseable", zap.Uint("questionID", q.ID), zap.Error(err))
			}
		}

		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func (s *PracticeService) buildSession(req *PracticeRequest, subject *model.Subject, questions []QuestionDTO) (*PracticeSession, error) {
	now := time.Now()
	session := &PracticeSession{
		SessionID:       uuid.NewString(),
		Mode:            req.Mode,
		SubjectID:       subject.ID,
		SubjectName:     subject.Name,
		Questions:       questions,
		TotalCount:      len(questions),
		CurrentProgress: 0,
		StartTime:       now,
	}

	switch req.Mode {
	case util.ModeExam:
		end := now.Add(time.Duration(req.ExamDuration) * time.Minute)
		session.ExamDuration = req.ExamDuration
		session.EndTime = &end
		session.Tip = fmt.Sprintf("模拟考试，限时%d分钟，请认真作答", req.ExamDuration)
	case util.ModeTimed:
		session.TimePerQuestion = req.TimePerQuestion
		session.Tip = fmt.Sprintf("限时挑战，每题%d秒，快速作答", req.TimePerQuestion)
	case util.ModeChallenge:
		passRequired := int(float64(len(questions)) * 0.8)
		session.ChallengeLevel = req.ChallengeLevel
		session.PassRequiredCorrect = passRequired
		session.Tip = fmt.Sprintf("第%d关，答对%d题即可通关", req.ChallengeLevel, passRequired)
	case util.ModeChapter:
		if req.ChapterID > 0 {
			chapter, err := s.ChapterRepo.FindByID(req.ChapterID)
			if err == nil {
				session.ChapterID = chapter.ID
				session.ChapterName = chapter.Name
				session.Tip = "章节专项练习：" + chapter.Name
			}
		}
	case util.ModeWrongQuestion:
		session.Tip = "错题强化模式，专攻薄弱知识点"
	case util.ModeFavorite:
		session.Tip = "收藏题专练，复习重点内容"
	case util.ModeSmartRecommend:
		session.Tip = "AI智能推荐，针对性提升"
	default:
		session.Tip = "开始练习，加油！"
	}

	return session, nil
}
