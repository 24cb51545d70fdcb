package models

import (
	"slices"
	"time"
)

// CloneEach deep-copies every element of in. A nil slice stays nil.
func CloneEach[T interface{ Clone() T }](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = v.Clone()
	}
	return out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time { return clonePtr(v) }

// Clone returns a copy sharing no memory with u.
func (u User) Clone() User {
	u.Enrollments = CloneEach(u.Enrollments)
	u.Permissions = clonePtr(u.Permissions)
	return u
}

// Clone returns a copy sharing no memory with t.
func (t Term) Clone() Term { return t }

// Clone returns a copy sharing no memory with s.
func (s Section) Clone() Section {
	s.StudentIDs = slices.Clone(s.StudentIDs)
	return s
}

// Clone returns a copy sharing no memory with e.
func (e Enrollment) Clone() Enrollment {
	e.Grades.CurrentScore = clonePtr(e.Grades.CurrentScore)
	e.ComputedCurrentScore = clonePtr(e.ComputedCurrentScore)
	return e
}

// Clone returns a copy sharing no memory with c.
func (c Course) Clone() Course {
	c.EndAt = cloneTime(c.EndAt)
	c.Sections = CloneEach(c.Sections)
	c.GradingPeriods = slices.Clone(c.GradingPeriods)
	c.Permissions = clonePtr(c.Permissions)
	c.Enrollments = CloneEach(c.Enrollments)
	return c
}

// Clone returns a copy sharing no memory with d.
func (d AssignmentDueDate) Clone() AssignmentDueDate {
	d.DueAt = cloneTime(d.DueAt)
	d.LockAt = cloneTime(d.LockAt)
	d.UnlockAt = cloneTime(d.UnlockAt)
	return d
}

// Clone returns a copy sharing no memory with a.
func (a Assignment) Clone() Assignment {
	a.SubmissionTypes = slices.Clone(a.SubmissionTypes)
	a.DueAt = cloneTime(a.DueAt)
	a.LockAt = cloneTime(a.LockAt)
	a.UnlockAt = cloneTime(a.UnlockAt)
	a.AllDates = CloneEach(a.AllDates)
	if a.LockInfo != nil {
		info := *a.LockInfo
		info.UnlockAt = cloneTime(info.UnlockAt)
		a.LockInfo = &info
	}
	if a.DiscussionTopicHeader != nil {
		header := a.DiscussionTopicHeader.Clone()
		a.DiscussionTopicHeader = &header
	}
	a.Rubric = slices.Clone(a.Rubric)
	if a.Submission != nil {
		submission := a.Submission.Clone()
		a.Submission = &submission
	}
	return a
}

// Clone returns a copy sharing no memory with g.
func (g AssignmentGroup) Clone() AssignmentGroup {
	g.Assignments = CloneEach(g.Assignments)
	return g
}

// Clone returns a copy sharing no memory with t.
func (t LTITool) Clone() LTITool { return t }

// Clone returns a copy sharing no memory with s.
func (s Submission) Clone() Submission {
	s.Grade = clonePtr(s.Grade)
	s.Attachments = slices.Clone(s.Attachments)
	s.SubmissionComments = slices.Clone(s.SubmissionComments)
	s.SubmissionHistory = CloneEach(s.SubmissionHistory)
	return s
}

// Clone returns a copy sharing no memory with q.
func (q Quiz) Clone() Quiz {
	q.DueAt = cloneTime(q.DueAt)
	q.LockAt = cloneTime(q.LockAt)
	q.UnlockAt = cloneTime(q.UnlockAt)
	q.AllDates = CloneEach(q.AllDates)
	q.QuestionTypes = slices.Clone(q.QuestionTypes)
	return q
}

// Clone returns a copy sharing no memory with q.
func (q QuizQuestion) Clone() QuizQuestion {
	q.Answers = slices.Clone(q.Answers)
	return q
}

// Clone returns a copy sharing no memory with q.
func (q QuizSubmission) Clone() QuizSubmission { return q }

// Clone returns a copy sharing no memory with q.
func (q QuizSubmissionQuestion) Clone() QuizSubmissionQuestion {
	q.Answers = slices.Clone(q.Answers)
	return q
}

// Clone returns a copy sharing no memory with i.
func (i ModuleItem) Clone() ModuleItem {
	if i.Details != nil {
		details := *i.Details
		details.DueAt = cloneTime(details.DueAt)
		i.Details = &details
	}
	return i
}

// Clone returns a copy sharing no memory with m.
func (m ModuleObject) Clone() ModuleObject {
	m.UnlockAt = cloneTime(m.UnlockAt)
	m.PrerequisiteIDs = slices.Clone(m.PrerequisiteIDs)
	m.Items = CloneEach(m.Items)
	return m
}

// Clone returns a copy sharing no memory with h.
func (h DiscussionTopicHeader) Clone() DiscussionTopicHeader {
	h.Attachments = slices.Clone(h.Attachments)
	h.Sections = CloneEach(h.Sections)
	if h.Assignment != nil {
		assignment := h.Assignment.Clone()
		h.Assignment = &assignment
	}
	return h
}

// Clone returns a copy sharing no memory with e.
func (e DiscussionEntry) Clone() DiscussionEntry {
	e.Attachments = slices.Clone(e.Attachments)
	return e
}

// Clone returns a copy sharing no memory with t.
func (t DiscussionTopic) Clone() DiscussionTopic {
	t.Participants = slices.Clone(t.Participants)
	t.View = CloneEach(t.View)
	t.UnreadEntries = slices.Clone(t.UnreadEntries)
	return t
}

// Clone returns a copy sharing no memory with p.
func (p Page) Clone() Page { return p }

// Clone returns a copy sharing no memory with f.
func (f FileFolder) Clone() FileFolder { return f }

// Clone returns a copy sharing no memory with m.
func (m Message) Clone() Message {
	m.ParticipatingUserIDs = slices.Clone(m.ParticipatingUserIDs)
	return m
}

// Clone returns a copy sharing no memory with c.
func (c Conversation) Clone() Conversation {
	c.Messages = CloneEach(c.Messages)
	c.Participants = slices.Clone(c.Participants)
	return c
}

// Clone returns a copy sharing no memory with r.
func (r Recipient) Clone() Recipient {
	if r.CommonCourses != nil {
		courses := make(map[string][]string, len(r.CommonCourses))
		for id, roles := range r.CommonCourses {
			courses[id] = slices.Clone(roles)
		}
		r.CommonCourses = courses
	}
	return r
}

// Clone returns a copy sharing no memory with s.
func (s ScheduleItem) Clone() ScheduleItem {
	s.AllDayAt = cloneTime(s.AllDayAt)
	s.EndAt = cloneTime(s.EndAt)
	if s.Assignment != nil {
		assignment := s.Assignment.Clone()
		s.Assignment = &assignment
	}
	return s
}

// Clone returns a copy sharing no memory with p.
func (p PlannerItem) Clone() PlannerItem {
	p.Plannable.TodoDate = cloneTime(p.Plannable.TodoDate)
	return p
}

// Clone returns a copy sharing no memory with n.
func (n AccountNotification) Clone() AccountNotification { return n }

// Clone returns a copy sharing no memory with g.
func (g Group) Clone() Group {
	g.MemberIDs = slices.Clone(g.MemberIDs)
	return g
}

// Clone returns a copy sharing no memory with b.
func (b Bookmark) Clone() Bookmark { return b }

// Clone returns a copy sharing no memory with s.
func (s StreamItem) Clone() StreamItem {
	s.SubmittedAt = cloneTime(s.SubmittedAt)
	s.Grade = clonePtr(s.Grade)
	return s
}

// Clone returns a copy sharing no memory with a.
func (a Alert) Clone() Alert { return a }

// Clone returns a copy sharing no memory with t.
func (t AlertThreshold) Clone() AlertThreshold { return t }

// Clone returns a copy sharing no memory with a.
func (a Annotation) Clone() Annotation {
	if a.InkList != nil {
		a.InkList = make([][]Coordinate, len(a.InkList))
		for i, stroke := range a.InkList {
			a.InkList[i] = slices.Clone(stroke)
		}
	}
	return a
}
