// Package prompts builds the instruction prompts sent to the Bedrock agents.
// The agents are prompted to return clean JSON so responses can be passed
// through to the frontend unmodified.
package prompts

import "fmt"

// CoursePlan builds the prompt for the course-creator agent from a user's
// professional profile.
func CoursePlan(experience, techStack, expectedRole string) string {
	return fmt.Sprintf(
		"Create a personalized learning plan for a user with the following profile: "+
			"Years of Experience: %s. "+
			"Current Tech Stack: %s. "+
			"Aspiring to be a: %s. "+
			"The plan should be structured into weekly modules, with specific, actionable tasks for each week. "+
			"Return the output as a clean JSON object without any surrounding text or markdown formatting.",
		experience, techStack, expectedRole)
}

// TopicContent builds the prompt for the trainer agent to generate learning
// content for one topic of a course.
func TopicContent(courseTitle, topicTitle string) string {
	return fmt.Sprintf(
		"Generate detailed learning content for the topic '%s' "+
			"which is part of the course '%s'. The content should include "+
			"a detailed explanation, hyperlinks to relevant external resources, "+
			"and indicate if a quiz should follow the content. Return the output as a clean JSON object "+
			"without any surrounding text or markdown formatting.",
		topicTitle, courseTitle)
}

// Quiz builds the prompt for the trainer agent to author a 3-question
// multiple-choice quiz about a topic.
func Quiz(courseTitle, topicTitle string) string {
	return fmt.Sprintf(
		"Act as a senior software engineering instructor. Create a 3-question multiple-choice quiz "+
			"about the topic '%s' from the course '%s'. "+
			"Use your internal knowledge to generate the questions and answers. "+
			"The response must be a clean JSON object with a single key 'questions'. "+
			"The value of 'questions' should be an array of objects. Each object should have: "+
			"1. A 'question' key with the question text (string). "+
			"2. An 'options' key with an array of 4 string options. "+
			"3. An 'answer' key with the string of the correct option. "+
			"Do not include any other text or markdown formatting in the response.",
		topicTitle, courseTitle)
}

// ChatbotAnswer builds the prompt for the trainer agent to answer a free-form
// student question.
func ChatbotAnswer(query string) string {
	return fmt.Sprintf(
		"You are an expert AI learning assistant for software developers. A student has asked the "+
			"following question: '%s'. Provide a clear, helpful, and concise answer. "+
			"Return the response as a clean JSON object with a single key 'answer' which contains your text response. "+
			"Do not include any other text or markdown formatting.",
		query)
}
