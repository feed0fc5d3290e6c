/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"fmt"
	"strings"
)

// DefaultCourseLimit bounds course search results when the caller does not.
const DefaultCourseLimit = 20

type Course struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Distance string `json:"distance"`
}

func (c *Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: course name", ErrMissingFields)
	}
	return nil
}

// MatchCourse reports whether query appears in the course name or location.
// An empty query matches every course.
func MatchCourse(c Course, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Location), q)
}

// DefaultCourses is the catalog a fresh store is seeded with.
func DefaultCourses() []Course {
	return []Course{
		{Name: "안양 컨트리클럽", Location: "경기도 군포시", Distance: "12km"},
		{Name: "웰링턴 컨트리클럽", Location: "경기도 이천시", Distance: "45km"},
		{Name: "해슬리 나인브릿지", Location: "경기도 여주시", Distance: "52km"},
		{Name: "잭니클라우스 골프클럽 코리아", Location: "인천광역시 연수구", Distance: "35km"},
		{Name: "트리니티 클럽", Location: "경기도 여주시", Distance: "55km"},
		{Name: "곤지암 골프클럽", Location: "경기도 광주시", Distance: "38km"},
		{Name: "남촌 골프클럽", Location: "경기도 광주시", Distance: "40km"},
		{Name: "레이크사이드 컨트리클럽", Location: "경기도 용인시", Distance: "28km"},
		{Name: "화산 컨트리클럽", Location: "경기도 용인시", Distance: "42km"},
		{Name: "블루원 용인 양지", Location: "경기도 용인시", Distance: "48km"},
		{Name: "88 컨트리클럽", Location: "경기도 용인시", Distance: "25km"},
		{Name: "기흥 컨트리클럽", Location: "경기도 화성시", Distance: "32km"},
		{Name: "남서울 컨트리클럽", Location: "경기도 성남시", Distance: "15km"},
		{Name: "뉴서울 컨트리클럽", Location: "경기도 광주시", Distance: "22km"},
		{Name: "서원밸리 컨트리클럽", Location: "경기도 파주시", Distance: "45km"},
		{Name: "송추 컨트리클럽", Location: "경기도 양주시", Distance: "38km"},
		{Name: "스카이72 (클럽72)", Location: "인천광역시 중구", Distance: "40km"},
		{Name: "베어즈베스트 청라", Location: "인천광역시 서구", Distance: "30km"},
		{Name: "제이드팰리스 골프클럽", Location: "강원도 춘천시", Distance: "65km"},
		{Name: "휘슬링락 컨트리클럽", Location: "강원도 춘천시", Distance: "68km"},
		{Name: "설해원", Location: "강원도 양양군", Distance: "150km"},
		{Name: "세이지우드 홍천", Location: "강원도 홍천군", Distance: "85km"},
		{Name: "라비에벨 골프 앤 리조트", Location: "강원도 춘천시", Distance: "70km"},
		{Name: "우정힐스 컨트리클럽", Location: "충청남도 천안시", Distance: "85km"},
		{Name: "사우스케이프 오너스클럽", Location: "경상남도 남해군", Distance: "350km"},
		{Name: "클럽 나인브릿지 (제주)", Location: "제주특별자치도", Distance: "450km"},
		{Name: "핀크스 골프클럽", Location: "제주특별자치도", Distance: "455km"},
		{Name: "블랙스톤 제주", Location: "제주특별자치도", Distance: "445km"},
	}
}
