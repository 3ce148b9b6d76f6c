package bank

import "github.com/Akhileshvankayala/quiz-for-IP/internal/models"

// Default returns the built-in bank of Java questions
func Default() *Bank {
	b, err := New(defaultQuestions())
	if err != nil {
		// built-in data is fixed; a failure here is a programming error
		panic(err)
	}
	return b
}

func defaultQuestions() []models.Question {
	return []models.Question{
		{
			Text: "What is the correct syntax for the main method in Java?",
			Options: []string{
				"public static void main(String args[])",
				"static public void main(String[] args)",
				"public static void main(String[] args)",
				"public void main(String[] args)",
			},
			CorrectAnswer: 2,
			FunFact:       "Fun Fact: The main method is the entry point of any Java application. The JVM calls this method when you run a Java program!",
			Difficulty:    models.DifficultyEasy,
		},
		{
			Text:          "Which of the following is NOT a Java primitive data type?",
			Options:       []string{"int", "String", "boolean", "char"},
			CorrectAnswer: 1,
			FunFact:       "Fun Fact: String is actually a class in Java, not a primitive type. It's stored in the heap memory and has many useful methods!",
			Difficulty:    models.DifficultyEasy,
		},
		{
			Text:          "What will be the output of: System.out.println(10 + 20 + \"Hello\" + 30 + 40);",
			Options:       []string{"30Hello3040", "10203040Hello", "30Hello70", "1020Hello3040"},
			CorrectAnswer: 0,
			FunFact:       "Fun Fact: In Java, string concatenation is evaluated left to right. Numbers are added until a string is encountered, then everything becomes string concatenation!",
			Difficulty:    models.DifficultyMedium,
		},
		{
			Text:          "Which keyword is used to prevent inheritance in Java?",
			Options:       []string{"static", "final", "private", "abstract"},
			CorrectAnswer: 1,
			FunFact:       "Fun Fact: The 'final' keyword can be used with classes, methods, and variables. Final classes like String cannot be extended!",
			Difficulty:    models.DifficultyMedium,
		},
		{
			Text:          "What is the time complexity of adding an element to a HashMap in Java?",
			Options:       []string{"O(1) average case", "O(log n)", "O(n)", "O(n^2)"},
			CorrectAnswer: 0,
			FunFact:       "Fun Fact: HashMap uses hash tables internally. In the best case, it offers O(1) insertion, but in worst case (when all keys hash to same bucket), it can degrade to O(n)!",
			Difficulty:    models.DifficultyHard,
		},
		{
			Text:          "Which method is used to compare two strings in Java?",
			Options:       []string{"compare()", "equals()", "==", "compareTo()"},
			CorrectAnswer: 1,
			FunFact:       "Fun Fact: Always use equals() for string comparison! The == operator compares references, not actual string content.",
			Difficulty:    models.DifficultyEasy,
		},
		{
			Text:          "What is the default value of a boolean variable in Java?",
			Options:       []string{"true", "false", "0", "null"},
			CorrectAnswer: 1,
			FunFact:       "Fun Fact: All boolean instance variables are automatically initialized to false. Local boolean variables must be explicitly initialized!",
			Difficulty:    models.DifficultyMedium,
		},
		{
			Text:          "Which design pattern is implemented by the String class in Java?",
			Options:       []string{"Singleton", "Factory", "Immutable Object", "Observer"},
			CorrectAnswer: 2,
			FunFact:       "Fun Fact: String objects are immutable in Java. Once created, they cannot be changed. This makes them thread-safe and allows for string pooling!",
			Difficulty:    models.DifficultyHard,
		},
		{
			Text: "What is the correct way to create a thread in Java?",
			Options: []string{
				"Extend Thread class only",
				"Implement Runnable interface only",
				"Both extending Thread and implementing Runnable",
				"Use ThreadGroup class",
			},
			CorrectAnswer: 2,
			FunFact:       "Fun Fact: Implementing Runnable is generally preferred over extending Thread because Java supports single inheritance, and you might want to extend another class!",
			Difficulty:    models.DifficultyMedium,
		},
		{
			Text: "What happens when you call System.gc() in Java?",
			Options: []string{
				"Forces immediate garbage collection",
				"Suggests JVM to run garbage collection",
				"Throws an exception",
				"Clears all static variables",
			},
			CorrectAnswer: 1,
			FunFact:       "Fun Fact: System.gc() is just a suggestion to the JVM. The JVM may choose to ignore it! Modern JVMs are very efficient at managing memory automatically.",
			Difficulty:    models.DifficultyHard,
		},
	}
}
